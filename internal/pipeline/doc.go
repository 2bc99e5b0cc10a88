// Package pipeline is the composition algebra and dispatch core for
// bidirectional protocol stages.
//
// A Stage is a factory for a PipePair: three total functions —
// OnCommand, OnEvent, OnManagement — each returning an Emission, the
// ordered sequence of UpEvent/DownCommand items a stage produces per
// call. Vertical composition stacks two Stages so one's downward
// output feeds the other's downward input, and symmetrically for
// events upward; Parallel composition picks one Stage's command
// pipeline and another's event pipeline. Build turns a composed Stage
// into an Injector: the external handle that feeds commands, events,
// and management messages in, and drains terminal items to a pair of
// sinks.
//
// Ownership boundary:
// - the tagged-union Emission and its constructors (Nothing,
//   SingleEvent, SingleCommand, Many)
// - the vertical dispatch loops (loopLeft/loopRight) and management
//   fan-out
// - the Injector/Sink boundary and its panic-to-failure-sink routing
//
// Out of scope, by design (spec.md §1): transport I/O, buffering or
// backpressure between stages, retries, persistence, cross-thread
// scheduling. Stages under internal/stages are consumers of this
// package, not part of it.
package pipeline
