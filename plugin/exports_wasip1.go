//go:build wasip1

package plugin

import (
	"encoding/json"

	"github.com/tickgate-dev/tickgate-sdk/bridge"
	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
	"github.com/tickgate-dev/tickgate-sdk/internal/abi"
	"github.com/tickgate-dev/tickgate-sdk/wireformat"
)

//go:wasmimport tickgate_host get_plugin_handle
func hostGetPluginHandle(packed uint64) uint64

//go:wasmimport tickgate_host logprintf
func hostLogprintf(packed uint64) uint64

// hostResolver queries the server's address-to-handle map.
func hostResolver(addr entities.Address) (entities.PluginHandle, bool) {
	resp, err := CallHost[wireformat.ResolveHandleRequest, wireformat.ResolveHandleResponse](
		hostGetPluginHandle, wireformat.ResolveHandleRequest{Address: uint64(addr)})
	if err != nil || !resp.Found {
		return entities.NilHandle, false
	}
	return entities.PluginHandle(resp.Handle), true
}

// hostSink forwards one formatted line to the server's log.
func hostSink(message string) {
	_, _ = CallHost[wireformat.LogMessageRequest, wireformat.LogMessageResponse](
		hostLogprintf, wireformat.LogMessageRequest{Message: message})
}

func init() {
	b := bridge.New(bridge.WithResolver(ports.HandleResolverFunc(hostResolver)))
	SetDefault(NewAdapter(b))
}

//go:wasmexport supports
func exportSupports() uint32 {
	return uint32(EntrySupports())
}

//go:wasmexport anchor_address
func exportAnchorAddress() uint64 {
	return uint64(AnchorAddress())
}

//go:wasmexport load
func exportLoad(handle uint64, packed uint64) uint32 {
	var config map[string]any
	if packed != 0 {
		if data := abi.BytesFromPtr(packed); len(data) > 0 {
			_ = json.Unmarshal(data, &config)
		}
		abi.DeallocatePacked(packed)
	}

	block := &entities.HostBlock{Log: hostSink, Config: config}
	if EntryLoad(entities.PluginHandle(handle), block) {
		return 1
	}
	return 0
}

//go:wasmexport unload
func exportUnload(handle uint64) {
	EntryUnload(entities.PluginHandle(handle))
}

//go:wasmexport process_tick
func exportProcessTick(handle uint64) {
	EntryTick(entities.PluginHandle(handle))
}
