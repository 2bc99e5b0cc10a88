package pipeline

// parallelStage composes two Stages sharing all four port types into
// one: the left child drives the command pipeline, the right child
// drives the event pipeline. The discarded sides (left's event
// pipeline, right's command pipeline) are unreachable by construction
// — no dispatch is needed to keep them from firing.
type parallelStage[CA, CB, EA, EB any] struct {
	left  Stage[CA, CB, EA, EB]
	right Stage[CA, CB, EA, EB]
}

// Parallel combines two Stages with identical port types: OnCommand
// delegates to left, OnEvent delegates to right.
func Parallel[CA, CB, EA, EB any](left, right Stage[CA, CB, EA, EB]) Stage[CA, CB, EA, EB] {
	return parallelStage[CA, CB, EA, EB]{left: left, right: right}
}

func (p parallelStage[CA, CB, EA, EB]) Apply(ctx *Context) PipePair[CA, CB, EA, EB] {
	return &parallelPipePair[CA, CB, EA, EB]{
		left:  p.left.Apply(ctx),
		right: p.right.Apply(ctx),
	}
}

type parallelPipePair[CA, CB, EA, EB any] struct {
	left  PipePair[CA, CB, EA, EB]
	right PipePair[CA, CB, EA, EB]
}

func (p *parallelPipePair[CA, CB, EA, EB]) OnCommand(cmd CA) Emission[EA, CB] {
	return p.left.OnCommand(cmd)
}

func (p *parallelPipePair[CA, CB, EA, EB]) OnEvent(evt EB) Emission[EA, CB] {
	return p.right.OnEvent(evt)
}

// OnManagement applies the message to both children and concatenates
// left before right, same as vertical composition.
func (p *parallelPipePair[CA, CB, EA, EB]) OnManagement(msg Message) Emission[EA, CB] {
	leftReply := p.left.OnManagement(msg)
	rightReply := p.right.OnManagement(msg)
	return leftReply.Append(rightReply)
}
