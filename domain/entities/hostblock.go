package entities

// MaxLogMessage is the size of the host's fixed log line buffer in bytes.
// Formatted messages longer than this are cut off silently on both sides of
// the boundary.
const MaxLogMessage = 1024

// LogWriter is the host's log sink entry point. It receives one fully
// formatted message per call; the host appends its own timestamp and newline.
type LogWriter func(message string)

// HostBlock is the opaque data block the host hands to a plugin at load time.
// The SDK interprets only the fields it needs (the log sink); everything else
// is passed through untouched for downstream consumers.
type HostBlock struct {
	// Log is the host's log sink. A block without a sink is unusable and
	// causes Load to fail.
	Log LogWriter `json:"-"`

	// Config carries host-supplied startup data the SDK does not interpret.
	Config map[string]any `json:"config,omitempty"`
}
