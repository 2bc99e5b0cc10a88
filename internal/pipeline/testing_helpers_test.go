package pipeline

// identityStage forwards commands and events unchanged using the
// fast-path constructors, exactly as spec.md §6 describes for proving
// fast-path equivalence and passthrough identity.
type identityStage[T any] struct{}

func (identityStage[T]) Apply(ctx *Context) PipePair[T, T, T, T] {
	return identityPipePair[T]{}
}

type identityPipePair[T any] struct{}

func (identityPipePair[T]) OnCommand(cmd T) Emission[T, T] {
	return SingleCommand[T, T](cmd)
}

func (identityPipePair[T]) OnEvent(evt T) Emission[T, T] {
	return SingleEvent[T, T](evt)
}

func (identityPipePair[T]) OnManagement(msg Message) Emission[T, T] {
	return Nothing[T, T]()
}

// materializedIdentityStage is identityStage but returns its single
// item via Many instead of the fast-path constructors, for fast-path
// equivalence tests (spec.md §8).
type materializedIdentityStage[T any] struct{}

func (materializedIdentityStage[T]) Apply(ctx *Context) PipePair[T, T, T, T] {
	return materializedIdentityPipePair[T]{}
}

type materializedIdentityPipePair[T any] struct{}

func (materializedIdentityPipePair[T]) OnCommand(cmd T) Emission[T, T] {
	return Many([]Item[T, T]{{IsEvent: false, Command: cmd}})
}

func (materializedIdentityPipePair[T]) OnEvent(evt T) Emission[T, T] {
	return Many([]Item[T, T]{{IsEvent: true, Event: evt}})
}

func (materializedIdentityPipePair[T]) OnManagement(msg Message) Emission[T, T] {
	return Nothing[T, T]()
}

// nothingStage declines every callback.
type nothingStage[CA, CB, EA, EB any] struct{}

func (nothingStage[CA, CB, EA, EB]) Apply(ctx *Context) PipePair[CA, CB, EA, EB] {
	return nothingPipePair[CA, CB, EA, EB]{}
}

type nothingPipePair[CA, CB, EA, EB any] struct{}

func (nothingPipePair[CA, CB, EA, EB]) OnCommand(CA) Emission[EA, CB] {
	return Nothing[EA, CB]()
}

func (nothingPipePair[CA, CB, EA, EB]) OnEvent(EB) Emission[EA, CB] {
	return Nothing[EA, CB]()
}

func (nothingPipePair[CA, CB, EA, EB]) OnManagement(Message) Emission[EA, CB] {
	return Nothing[EA, CB]()
}

// tagEmitterStage ignores command/event traffic (passthrough) and on
// management emits one UpEvent carrying its configured tag, used to
// verify management fan-out ordering (spec.md §8 scenario 6).
type tagEmitterStage[T any] struct {
	tag T
}

func (s tagEmitterStage[T]) Apply(ctx *Context) PipePair[T, T, T, T] {
	return tagEmitterPipePair[T]{tag: s.tag}
}

type tagEmitterPipePair[T any] struct {
	tag T
}

func (p tagEmitterPipePair[T]) OnCommand(cmd T) Emission[T, T] {
	return SingleCommand[T, T](cmd)
}

func (p tagEmitterPipePair[T]) OnEvent(evt T) Emission[T, T] {
	return SingleEvent[T, T](evt)
}

func (p tagEmitterPipePair[T]) OnManagement(msg Message) Emission[T, T] {
	return SingleEvent[T, T](p.tag)
}

// recordingCommandSink/recordingEventSink capture terminal items (and
// failures) in arrival order for assertions.
type recordingCommandSink[CB any] struct {
	commands []CB
	failures []error
}

func (s *recordingCommandSink[CB]) OnCommand(cmd CB)        { s.commands = append(s.commands, cmd) }
func (s *recordingCommandSink[CB]) OnCommandFailure(err error) { s.failures = append(s.failures, err) }

type recordingEventSink[EA any] struct {
	events   []EA
	failures []error
}

func (s *recordingEventSink[EA]) OnEvent(evt EA)          { s.events = append(s.events, evt) }
func (s *recordingEventSink[EA]) OnEventFailure(err error) { s.failures = append(s.failures, err) }
