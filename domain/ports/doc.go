// Package ports defines the interfaces through which the SDK core talks to
// its collaborators: the host's address-to-handle map, the wall clock used by
// timers, and the descriptor loading pipeline. Implementations live in the
// infrastructure and host packages; tests substitute fakes.
package ports
