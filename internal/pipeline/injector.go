package pipeline

import "fmt"

// CommandSink and EventSink are the external receivers of terminal
// items leaving a built pipeline: DownCommands exiting the bottom land on a CommandSink,
// UpEvents exiting the top land on an EventSink. Failure methods
// receive a stage exception instead of rethrowing it.
type CommandSink[CB any] interface {
	OnCommand(cmd CB)
	OnCommandFailure(err error)
}

type EventSink[EA any] interface {
	OnEvent(evt EA)
	OnEventFailure(err error)
}

// CommandSinkFuncs and EventSinkFuncs adapt plain functions into a
// CommandSink/EventSink, for callers that don't want to declare a
// named type.
type CommandSinkFuncs[CB any] struct {
	Command func(CB)
	Failure func(error)
}

func (s CommandSinkFuncs[CB]) OnCommand(cmd CB) { s.Command(cmd) }
func (s CommandSinkFuncs[CB]) OnCommandFailure(err error) {
	if s.Failure != nil {
		s.Failure(err)
		return
	}
	panic(err)
}

type EventSinkFuncs[EA any] struct {
	Event   func(EA)
	Failure func(error)
}

func (s EventSinkFuncs[EA]) OnEvent(evt EA) { s.Event(evt) }
func (s EventSinkFuncs[EA]) OnEventFailure(err error) {
	if s.Failure != nil {
		s.Failure(err)
		return
	}
	panic(err)
}

// Metrics is the optional instrumentation capability an embedder may
// attach to an Injector after Build. The core never imports a metrics
// library; this interface is the seam internal/observability's
// prometheus-backed recorder satisfies.
type Metrics interface {
	RecordDispatch(direction string)
	RecordManagementFanout()
	RecordInjectionFailure(direction string)
}

// Injector is the external handle for a built pipeline: a root
// PipePair plus the two terminal sinks its output drains into.
type Injector[CA, CB, EA, EB any] struct {
	root        PipePair[CA, CB, EA, EB]
	commandSink CommandSink[CB]
	eventSink   EventSink[EA]

	// Metrics is left nil by Build; an embedder assigns it afterward,
	// mirroring Context.Redeliver's post-Build wiring.
	Metrics Metrics
}

// Build wires a root Stage, a Context, and the two terminal sinks into
// a runnable Injector. Apply is called on the Stage exactly once, here.
func Build[CA, CB, EA, EB any](root Stage[CA, CB, EA, EB], ctx *Context, commandSink CommandSink[CB], eventSink EventSink[EA]) *Injector[CA, CB, EA, EB] {
	return &Injector[CA, CB, EA, EB]{
		root:        root.Apply(ctx),
		commandSink: commandSink,
		eventSink:   eventSink,
	}
}

// InjectCommand feeds a command into the root's command pipeline. A
// panic raised by the stage is recovered and delivered to the command
// sink as a failure — no items from this injection reach any sink
// (spec.md §7, case 1).
func (in *Injector[CA, CB, EA, EB]) InjectCommand(cmd CA) {
	if in.Metrics != nil {
		in.Metrics.RecordDispatch("command")
	}
	em, err := in.safeOnCommand(cmd)
	if err != nil {
		if in.Metrics != nil {
			in.Metrics.RecordInjectionFailure("command")
		}
		in.commandSink.OnCommandFailure(err)
		return
	}
	in.drain(em)
}

// InjectEvent feeds an event into the root's event pipeline. Failures
// route to the event sink (spec.md §7, case 1, symmetric).
func (in *Injector[CA, CB, EA, EB]) InjectEvent(evt EB) {
	if in.Metrics != nil {
		in.Metrics.RecordDispatch("event")
	}
	em, err := in.safeOnEvent(evt)
	if err != nil {
		if in.Metrics != nil {
			in.Metrics.RecordInjectionFailure("event")
		}
		in.eventSink.OnEventFailure(err)
		return
	}
	in.drain(em)
}

// Management feeds a management message into the root's management
// path. Unlike InjectCommand/InjectEvent, exceptions are not caught
// here — they propagate to the caller (spec.md §4.6, §7 case 2).
func (in *Injector[CA, CB, EA, EB]) Management(msg Message) {
	in.drain(in.root.OnManagement(msg))
	if in.Metrics != nil {
		in.Metrics.RecordManagementFanout()
	}
}

func (in *Injector[CA, CB, EA, EB]) safeOnCommand(cmd CA) (em Emission[EA, CB], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	em = in.root.OnCommand(cmd)
	return em, nil
}

func (in *Injector[CA, CB, EA, EB]) safeOnEvent(evt EB) (em Emission[EA, CB], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	em = in.root.OnEvent(evt)
	return em, nil
}

// drain dispatches a successfully produced Emission's items to their
// matching sink, in emission order, synchronously, before returning.
func (in *Injector[CA, CB, EA, EB]) drain(em Emission[EA, CB]) {
	switch em.Kind() {
	case KindEmpty:
		return
	case KindEvent:
		in.eventSink.OnEvent(em.event)
		return
	case KindCommand:
		in.commandSink.OnCommand(em.command)
		return
	default:
		for _, it := range em.items {
			if it.IsEvent {
				in.eventSink.OnEvent(it.Event)
			} else {
				in.commandSink.OnCommand(it.Command)
			}
		}
	}
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("pipeline: panic: %v", r)
}
