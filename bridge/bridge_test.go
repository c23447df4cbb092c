package bridge

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
	"github.com/tickgate-dev/tickgate-sdk/domain/ports"
)

// countingResolver records every lookup so tests can assert pass-through
// behavior (the bridge itself never caches).
type countingResolver struct {
	mu      sync.Mutex
	calls   int
	handles map[entities.Address]entities.PluginHandle
}

func newCountingResolver(handles map[entities.Address]entities.PluginHandle) *countingResolver {
	return &countingResolver{handles: handles}
}

func (r *countingResolver) Resolve(addr entities.Address) (entities.PluginHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	h, ok := r.handles[addr]
	if !ok {
		return entities.NilHandle, false
	}
	return h, true
}

func (r *countingResolver) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func hostBlock(lines *[]string) *entities.HostBlock {
	return &entities.HostBlock{
		Log: func(msg string) { *lines = append(*lines, msg) },
	}
}

func TestSupports_PureAndConstant(t *testing.T) {
	b := New()

	first := b.Supports()
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, b.Supports())
	}
	assert.Equal(t, entities.DefaultSupports, first)
	assert.Equal(t, uint16(0x0200), first.Version())
	assert.False(t, first.Has(entities.CapProcessTick),
		"tick support is opted into by the plugin, not the default mask")
}

func TestResolveHandle_PassThrough(t *testing.T) {
	resolver := newCountingResolver(map[entities.Address]entities.PluginHandle{
		0x1000: 7,
	})
	b := New(WithResolver(resolver))

	h1, ok := b.ResolveHandle(0x1000)
	require.True(t, ok)
	h2, ok := b.ResolveHandle(0x1000)
	require.True(t, ok)

	assert.Equal(t, h1, h2, "same address resolves to the same handle")
	assert.Equal(t, 2, resolver.Calls(), "no caching at this layer")

	_, ok = b.ResolveHandle(0x2000)
	assert.False(t, ok, "unmapped address surfaces as absent")
}

func TestLoad_FailsWithoutUsableBlock(t *testing.T) {
	b := New()
	h := entities.PluginHandle(1)

	assert.False(t, b.Load(h, nil))
	assert.False(t, b.Load(h, &entities.HostBlock{}), "block without log sink")
	assert.False(t, b.Loaded(h), "failed load leaves no session")
	assert.Nil(t, b.boundSink(), "failed load binds no sink")

	// ProcessTick for a never-loaded handle is a no-op.
	b.ProcessTick(h)
}

func TestLoadUnloadLoad_CleanSlate(t *testing.T) {
	clock := newFakeClock()
	b := New(WithClock(clock))
	h := entities.PluginHandle(3)

	var lines []string
	require.True(t, b.Load(h, hostBlock(&lines)))

	fired := 0
	_, ok := b.SetTimer(h, 10*time.Millisecond, true, func() { fired++ })
	require.True(t, ok)

	b.Unload(h)
	assert.False(t, b.Loaded(h))

	// Reload: the previous session's timers must be gone.
	require.True(t, b.Load(h, hostBlock(&lines)))
	clock.Advance(time.Second)
	b.ProcessTick(h)
	assert.Equal(t, 0, fired, "timer from the prior session leaked across unload")
}

func TestProcessTick_ServicesTimers(t *testing.T) {
	clock := newFakeClock()
	b := New(WithClock(clock))
	h := entities.PluginHandle(5)

	var lines []string
	require.True(t, b.Load(h, hostBlock(&lines)))

	fired := 0
	id, ok := b.SetTimer(h, 20*time.Millisecond, true, func() { fired++ })
	require.True(t, ok)

	b.ProcessTick(h)
	assert.Equal(t, 0, fired, "not due yet")

	clock.Advance(20 * time.Millisecond)
	b.ProcessTick(h)
	assert.Equal(t, 1, fired)

	assert.True(t, b.KillTimer(h, id))
	clock.Advance(time.Second)
	b.ProcessTick(h)
	assert.Equal(t, 1, fired, "killed timer must not fire")
}

func TestProcessTick_IsolatedPerHandle(t *testing.T) {
	clock := newFakeClock()
	b := New(WithClock(clock))

	var lines []string
	require.True(t, b.Load(1, hostBlock(&lines)))
	require.True(t, b.Load(2, hostBlock(&lines)))

	firedA, firedB := 0, 0
	_, _ = b.SetTimer(1, 10*time.Millisecond, false, func() { firedA++ })
	_, _ = b.SetTimer(2, 10*time.Millisecond, false, func() { firedB++ })

	clock.Advance(time.Second)
	b.ProcessTick(1)
	assert.Equal(t, 1, firedA)
	assert.Equal(t, 0, firedB, "ticking one handle must not service another")
}

func TestSetTimer_RequiresLoadedHandle(t *testing.T) {
	b := New()

	_, ok := b.SetTimer(9, time.Second, false, func() {})
	assert.False(t, ok)
	assert.False(t, b.KillTimer(9, 1))
}

func TestUnload_NeverLoadedIsNoop(t *testing.T) {
	b := New()
	b.Unload(42)
	assert.False(t, b.Loaded(42))
}

// fakeClock mirrors the timer package's test clock; duplicated here to keep
// the bridge tests self-contained.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ ports.Clock = (*fakeClock)(nil)
