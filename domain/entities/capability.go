package entities

import "fmt"

// CapabilityMask is the bitmask a plugin reports during negotiation. The low
// 16 bits carry the protocol version the plugin was built against; the high
// bits declare optional host-invoked hooks the plugin supports.
type CapabilityMask uint32

const (
	// ProtocolVersion is the Tickgate plugin protocol version this SDK
	// implements, encoded in the low 16 bits of the mask.
	ProtocolVersion CapabilityMask = 0x0200

	// VersionBits masks off the protocol version portion.
	VersionBits CapabilityMask = 0x0000ffff

	// CapHostCalls declares that the plugin invokes host-provided native
	// functions and needs the host call table at load time.
	CapHostCalls CapabilityMask = 0x10000

	// CapProcessTick declares that the plugin wants its process_tick entry
	// point invoked once per server tick.
	CapProcessTick CapabilityMask = 0x20000
)

// DefaultSupports is the mask the SDK reports on behalf of every plugin.
// Plugin negotiation entry points OR in the optional capabilities they
// actually implement, e.g. DefaultSupports | CapProcessTick.
const DefaultSupports = ProtocolVersion

// Has reports whether all bits of cap are set in m.
func (m CapabilityMask) Has(cap CapabilityMask) bool {
	return m&cap == cap
}

// With returns a copy of m with the given capability bits set.
func (m CapabilityMask) With(cap CapabilityMask) CapabilityMask {
	return m | cap
}

// Version extracts the protocol version portion of the mask.
func (m CapabilityMask) Version() uint16 {
	return uint16(m & VersionBits)
}

// String renders the mask for diagnostics, e.g. "v0x0200+tick".
func (m CapabilityMask) String() string {
	s := fmt.Sprintf("v0x%04x", m.Version())
	if m.Has(CapHostCalls) {
		s += "+natives"
	}
	if m.Has(CapProcessTick) {
		s += "+tick"
	}
	return s
}
