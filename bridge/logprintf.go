package bridge

import (
	"fmt"

	"github.com/tickgate-dev/tickgate-sdk/domain/entities"
)

// MaxMessageLen is the hard ceiling on a formatted log message. The host's
// log buffer is fixed at this size; longer messages are cut off silently.
const MaxMessageLen = entities.MaxLogMessage

// Logprintf formats a message printf-style and emits it to the host's log.
// The trailing arguments are captured and forwarded, unmodified, to
// Vlogprintf, which does the actual work.
func (b *Bridge) Logprintf(format string, args ...any) {
	b.Vlogprintf(format, args)
}

// Vlogprintf is the explicit-argument-list form of Logprintf and the single
// place where formatting happens. The message is truncated at MaxMessageLen
// bytes; truncation is silent, never an error. Directive semantics are those
// of the fmt package: a directive/argument type mismatch renders fmt's
// mismatch notation instead of being undefined.
//
// Messages emitted while no host sink is bound go to the fallback logger.
func (b *Bridge) Vlogprintf(format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > MaxMessageLen {
		msg = msg[:MaxMessageLen]
	}

	b.mu.RLock()
	sink := b.sink
	b.mu.RUnlock()

	if sink == nil {
		b.fallback.Info(msg)
		return
	}
	// The sink is a call back into the host; no bridge lock is held here.
	sink(msg)
}

// boundSink reports the currently bound host sink, for tests.
func (b *Bridge) boundSink() entities.LogWriter {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sink
}
