package pipeline

// Message is the payload carried by an out-of-band management
// injection. The core never inspects it; stages type-assert to
// whatever shape they care about and decline (return the empty
// Emission) on anything else.
type Message any

// PipePair is the instantiated, stateful runtime of one Stage. CA is
// the command type arriving from above, CB the command type leaving
// below, EA the event type leaving above, EB the event type arriving
// from below.
//
// All three operations are total: a PipePair never fails to produce
// an Emission by declining outright. Management declines by returning
// Nothing; OnCommand/OnEvent are expected to always transform their
// input, but may panic on protocol-level violations (spec.md §7) —
// the Injector is responsible for catching that.
type PipePair[CA, CB, EA, EB any] interface {
	OnCommand(cmd CA) Emission[EA, CB]
	OnEvent(evt EB) Emission[EA, CB]
	OnManagement(msg Message) Emission[EA, CB]
}

// Stage is a factory for a PipePair. Apply is called exactly once per
// pipeline instantiation; the Stage itself carries only configuration
// (e.g. a maximum frame length), never per-pipeline state.
type Stage[CA, CB, EA, EB any] interface {
	Apply(ctx *Context) PipePair[CA, CB, EA, EB]
}

// StageFunc adapts a plain function into a Stage, for stages whose
// Apply has no meaningful closure state beyond what the function
// literal already captures.
type StageFunc[CA, CB, EA, EB any] func(ctx *Context) PipePair[CA, CB, EA, EB]

func (f StageFunc[CA, CB, EA, EB]) Apply(ctx *Context) PipePair[CA, CB, EA, EB] {
	return f(ctx)
}

// PipePairFuncs adapts three plain functions into a PipePair, for
// stages with no internal state (e.g. tests, trivial adapters).
type PipePairFuncs[CA, CB, EA, EB any] struct {
	Command    func(CA) Emission[EA, CB]
	Event      func(EB) Emission[EA, CB]
	Management func(Message) Emission[EA, CB]
}

func (p PipePairFuncs[CA, CB, EA, EB]) OnCommand(cmd CA) Emission[EA, CB] {
	if p.Command == nil {
		return Nothing[EA, CB]()
	}
	return p.Command(cmd)
}

func (p PipePairFuncs[CA, CB, EA, EB]) OnEvent(evt EB) Emission[EA, CB] {
	if p.Event == nil {
		return Nothing[EA, CB]()
	}
	return p.Event(evt)
}

func (p PipePairFuncs[CA, CB, EA, EB]) OnManagement(msg Message) Emission[EA, CB] {
	if p.Management == nil {
		return Nothing[EA, CB]()
	}
	return p.Management(msg)
}

// Identity is the unit element for Vertical composition: it forwards
// every command and event unchanged and declines every management
// message. Useful as the seed value when folding a variable-length
// list of same-typed stages together with Vertical.
func Identity[T any]() Stage[T, T, T, T] {
	return StageFunc[T, T, T, T](func(ctx *Context) PipePair[T, T, T, T] {
		return identityElementPipePair[T]{}
	})
}

type identityElementPipePair[T any] struct{}

func (identityElementPipePair[T]) OnCommand(cmd T) Emission[T, T] {
	return SingleCommand[T, T](cmd)
}

func (identityElementPipePair[T]) OnEvent(evt T) Emission[T, T] {
	return SingleEvent[T, T](evt)
}

func (identityElementPipePair[T]) OnManagement(msg Message) Emission[T, T] {
	return Nothing[T, T]()
}
