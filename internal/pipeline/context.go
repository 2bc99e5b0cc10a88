package pipeline

import "time"

// Scheduler is the capability the tick stage (internal/stages/tick)
// needs from its Context: a way to redeliver a management message
// after a delay, without the core knowing anything about timers.
// Hosting this call (goroutine, runtime timer, actor mailbox) is the
// embedder's concern — see spec.md §5, "Cancellation / timeouts: none
// at the core level."
type Scheduler interface {
	Schedule(after time.Duration, fn func())
}

// Context is per-pipeline mutable state: created once per pipeline
// instance, owned by the single logical thread driving injection, and
// the point at which a pipeline exposes capabilities (a Scheduler and
// a Redeliver hook) that individual stages may require.
//
// spec.md §4.1 describes Context as also owning the CmdSlot/EvtSlot
// fast-path scratch. This codebase took the alternative the spec's own
// design notes (§9) call out as preferred: the fast path lives in the
// Emission tagged union (see emission.go) instead of in
// identity-compared Context slots, because Go generics give every
// composed layer a distinct CB/EA type — there is no single concretely
// typed slot pair that could serve every layer of an arbitrary
// composition. Context is therefore just a capability carrier.
type Context struct {
	Scheduler Scheduler

	// Redeliver lets a stage ask the embedder to feed a management
	// message back into this same pipeline later (spec.md §6's tick
	// stage is the motivating case). It is deliberately not set by
	// NewContext: the Injector doesn't exist until after the Stage
	// tree is applied to this Context, so embedders that need
	// redelivery build the Context, build the Injector, then assign
	// Redeliver = injector.Management before traffic starts.
	Redeliver func(msg Message)
}

// NewContext builds a Context around the given Scheduler. A nil
// Scheduler is valid for pipelines with no stage that needs one.
func NewContext(scheduler Scheduler) *Context {
	return &Context{Scheduler: scheduler}
}

// Dealias is a documented no-op. Under the slot-based design spec.md
// describes, a nested dispatch call's result may alias Context-owned
// scratch that a later call would overwrite; dealias materializes it
// before the caller stores or forwards it. The tagged-union Emission
// has no such aliasing window — every Emission value is already
// independent — so Dealias simply returns its argument. It is kept so
// the operation spec.md names has a home: callers that port logic from
// the slot-based description can call this and get the right behavior
// for free.
func Dealias[EA, CB any](em Emission[EA, CB]) Emission[EA, CB] {
	return em
}
