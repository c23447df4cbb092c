package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	sdkerrors "github.com/tickgate-dev/tickgate-sdk/domain/errors"
	"github.com/tickgate-dev/tickgate-sdk/hostfuncs"
)

// Executor manages the lifecycle of WASM plugins on behalf of the server's
// tick loop. It implements ports.HandleResolver over the anchor addresses
// loaded plugins register during instantiation.
type Executor struct {
	runtime  wazero.Runtime
	registry *hostfuncs.HandlerRegistry
	logger   *slog.Logger

	mu         sync.RWMutex
	instances  map[entities.PluginHandle]*PluginInstance
	addresses  map[entities.Address]entities.PluginHandle
	nextHandle uint64
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		logger:    slog.Default(),
		instances: make(map[entities.PluginHandle]*PluginInstance),
		addresses: make(map[entities.Address]entities.PluginHandle),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		reg, err := hostfuncs.NewRegistry(
			hostfuncs.WithMiddleware(
				hostfuncs.PanicRecoveryMiddleware(),
				hostfuncs.LoggingMiddleware(e.logger),
			),
			hostfuncs.WithBundle(hostfuncs.CoreBundle(e, e.pluginLog)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerHostFunctions(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Resolve implements ports.HandleResolver. It maps a plugin-registered
// anchor address back to the owning plugin's handle.
func (e *Executor) Resolve(addr entities.Address) (entities.PluginHandle, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.addresses[addr]
	return h, ok
}

// pluginLog is the sink behind the logprintf host function.
func (e *Executor) pluginLog(message string) {
	e.logger.Info(message, "source", "plugin")
}

// PluginInstance represents an instantiated WASM plugin.
type PluginInstance struct {
	module   api.Module
	id       uuid.UUID
	handle   entities.PluginHandle
	supports entities.CapabilityMask
	anchor   entities.Address
}

// Handle returns the handle the executor assigned at load time.
func (p *PluginInstance) Handle() entities.PluginHandle { return p.handle }

// ID returns the unique instance identifier.
func (p *PluginInstance) ID() uuid.UUID { return p.id }

// Supports returns the capability mask the plugin reported.
func (p *PluginInstance) Supports() entities.CapabilityMask { return p.supports }

// LoadPlugin instantiates a WASM module, negotiates capabilities, and runs
// the plugin's load entry point with the given config. The returned instance
// is registered for tick servicing and handle resolution.
func (e *Executor) LoadPlugin(ctx context.Context, wasmBytes []byte, config map[string]any) (*PluginInstance, error) {
	id := uuid.New()
	mod, err := e.runtime.InstantiateWithConfig(ctx, wasmBytes,
		wazero.NewModuleConfig().WithName(id.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	inst := &PluginInstance{module: mod, id: id}

	fail := func(reason string, cause error) (*PluginInstance, error) {
		mod.Close(ctx)
		return nil, &sdkerrors.LoadError{Handle: inst.handle, Reason: reason, Err: cause}
	}

	// Reactor-style modules export _initialize instead of a start function.
	if initFn := mod.ExportedFunction("_initialize"); initFn != nil {
		if _, err := initFn.Call(ctx); err != nil {
			return fail("_initialize failed", err)
		}
	}

	supportsFn := mod.ExportedFunction("supports")
	if supportsFn == nil {
		return fail("plugin does not export supports", nil)
	}
	results, err := supportsFn.Call(ctx)
	if err != nil || len(results) == 0 {
		return fail("supports call failed", err)
	}
	mask := entities.CapabilityMask(uint32(results[0]))
	if mask.Version() != entities.ProtocolVersion.Version() {
		return fail(fmt.Sprintf("protocol version mismatch: plugin reports %s", mask), nil)
	}
	inst.supports = mask

	e.mu.Lock()
	e.nextHandle++
	inst.handle = entities.PluginHandle(e.nextHandle)
	e.mu.Unlock()

	// The anchor address backs get_plugin_handle lookups for this instance.
	if anchorFn := mod.ExportedFunction("anchor_address"); anchorFn != nil {
		res, err := anchorFn.Call(ctx)
		if err == nil && len(res) > 0 {
			inst.anchor = entities.Address(res[0])
		}
	}

	configBytes, err := json.Marshal(config)
	if err != nil {
		return fail("failed to encode config", err)
	}
	packed, err := inst.writeGuestBytes(ctx, configBytes)
	if err != nil {
		return fail("failed to deliver config", err)
	}

	loadFn := mod.ExportedFunction("load")
	if loadFn == nil {
		return fail("plugin does not export load", nil)
	}
	results, err = loadFn.Call(ctx, uint64(inst.handle), packed)
	if err != nil {
		return fail("load call failed", err)
	}
	if len(results) == 0 || uint32(results[0]) == 0 {
		return fail("plugin rejected load", nil)
	}

	e.mu.Lock()
	e.instances[inst.handle] = inst
	if inst.anchor != 0 {
		e.addresses[inst.anchor] = inst.handle
	}
	e.mu.Unlock()

	e.logger.Info("plugin loaded",
		"instance", inst.id.String(),
		"handle", uint64(inst.handle),
		"supports", inst.supports.String())

	return inst, nil
}

// UnloadPlugin runs the plugin's unload entry point and releases the
// instance. Unload failures do not keep the instance registered.
func (e *Executor) UnloadPlugin(ctx context.Context, inst *PluginInstance) error {
	var merr *multierror.Error

	if unloadFn := inst.module.ExportedFunction("unload"); unloadFn != nil {
		if _, err := unloadFn.Call(ctx, uint64(inst.handle)); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("unload call failed: %w", err))
		}
	}

	e.mu.Lock()
	delete(e.instances, inst.handle)
	if inst.anchor != 0 {
		delete(e.addresses, inst.anchor)
	}
	e.mu.Unlock()

	if err := inst.module.Close(ctx); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("module close failed: %w", err))
	}

	e.logger.Info("plugin unloaded", "instance", inst.id.String(), "handle", uint64(inst.handle))
	return merr.ErrorOrNil()
}

// Tick runs one tick pass, invoking process_tick on every loaded plugin that
// negotiated it. A failing plugin does not stop the pass; all failures are
// folded into the returned error.
func (e *Executor) Tick(ctx context.Context) error {
	e.mu.RLock()
	ticking := make([]*PluginInstance, 0, len(e.instances))
	for _, inst := range e.instances {
		if inst.supports.Has(entities.CapProcessTick) {
			ticking = append(ticking, inst)
		}
	}
	e.mu.RUnlock()

	var merr *multierror.Error
	for _, inst := range ticking {
		tickFn := inst.module.ExportedFunction("process_tick")
		if tickFn == nil {
			continue
		}
		if _, err := tickFn.Call(ctx, uint64(inst.handle)); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("process_tick failed for handle %#x: %w", uint64(inst.handle), err))
		}
	}
	return merr.ErrorOrNil()
}

// Loaded reports the number of currently loaded plugins.
func (e *Executor) Loaded() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.instances)
}
