package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/tickgate-dev/tickgate-sdk/internal/abi"
)

// hostModuleName is the import namespace plugins bind host functions from.
const hostModuleName = "tickgate_host"

// registerHostFunctions exposes every registry handler as a WASM import with
// the uniform signature (packed uint64) -> packed uint64. Payloads are JSON
// in guest linear memory; responses are allocated in the guest via its
// exported allocate function.
func (e *Executor) registerHostFunctions(ctx context.Context) error {
	builder := e.runtime.NewHostModuleBuilder(hostModuleName)

	for _, name := range e.registry.Names() {
		localName := name
		builder.NewFunctionBuilder().
			WithFunc(func(ctx context.Context, m api.Module, packed uint64) uint64 {
				var payload []byte
				if packed != 0 {
					ptr := uint32(packed >> abi.PtrHighBits)
					length := uint32(packed)
					if ptr == 0 {
						return 0
					}
					data, ok := m.Memory().Read(ptr, length)
					if !ok {
						return 0
					}
					payload = data
				}

				resp, err := e.registry.Invoke(ctx, localName, payload)
				if err != nil || len(resp) == 0 {
					return 0
				}

				respPacked, werr := writeToGuest(ctx, m, resp)
				if werr != nil {
					return 0
				}
				return respPacked
			}).
			Export(localName)
	}

	_, err := builder.Instantiate(ctx)
	return err
}

// writeToGuest allocates guest memory via the module's exported allocate
// function, copies data into it, and returns the packed pointer/length.
func writeToGuest(ctx context.Context, m api.Module, data []byte) (uint64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	allocate := m.ExportedFunction("allocate")
	if allocate == nil {
		return 0, fmt.Errorf("guest does not export 'allocate'")
	}
	results, err := allocate.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to allocate in guest: %w", err)
	}
	if len(results) == 0 || results[0] == 0 {
		return 0, fmt.Errorf("guest allocate returned no memory")
	}

	ptr := uint32(results[0])
	if !m.Memory().Write(ptr, data) {
		return 0, fmt.Errorf("failed to write to guest memory")
	}
	return abi.PackPtrLen(ptr, uint32(len(data))), nil
}

// writeGuestBytes delivers data into this instance's linear memory.
func (p *PluginInstance) writeGuestBytes(ctx context.Context, data []byte) (uint64, error) {
	return writeToGuest(ctx, p.module, data)
}
