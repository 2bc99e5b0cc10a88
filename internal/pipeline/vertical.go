package pipeline

// verticalStage composes two Stages so the composite behaves as one:
// commands flow top-down through left then right, events flow
// bottom-up through right then left, and a command/event either child
// emits mid-traversal can itself become the other's input before
// anything exits the composite.
type verticalStage[CA, CB, CBB, EA, EB, EBB any] struct {
	left  Stage[CA, CB, EA, EB]
	right Stage[CB, CBB, EB, EBB]
}

// Vertical composes L over R: L's downward commands feed R's command
// input, R's upward events feed L's event input. The composed Stage's
// inner ports (CB, EB) are internal wiring, invisible at the boundary.
func Vertical[CA, CB, CBB, EA, EB, EBB any](left Stage[CA, CB, EA, EB], right Stage[CB, CBB, EB, EBB]) Stage[CA, CBB, EA, EBB] {
	return verticalStage[CA, CB, CBB, EA, EB, EBB]{left: left, right: right}
}

func (v verticalStage[CA, CB, CBB, EA, EB, EBB]) Apply(ctx *Context) PipePair[CA, CBB, EA, EBB] {
	return &verticalPipePair[CA, CB, CBB, EA, EB, EBB]{
		left:  v.left.Apply(ctx),
		right: v.right.Apply(ctx),
	}
}

type verticalPipePair[CA, CB, CBB, EA, EB, EBB any] struct {
	left  PipePair[CA, CB, EA, EB]
	right PipePair[CB, CBB, EB, EBB]
}

// OnCommand implements the command path of spec.md §4.4: compute the
// left child's Emission, then run loopLeft over it.
func (v *verticalPipePair[CA, CB, CBB, EA, EB, EBB]) OnCommand(cmd CA) Emission[EA, CBB] {
	return v.loopLeft(v.left.OnCommand(cmd))
}

// OnEvent implements the event path, the mirror image: compute the
// right child's Emission, then run loopRight over it.
func (v *verticalPipePair[CA, CB, CBB, EA, EB, EBB]) OnEvent(evt EBB) Emission[EA, CBB] {
	return v.loopRight(v.right.OnEvent(evt))
}

// loopLeft routes an Emission[EA,CB] produced by left: an UpEvent(EA)
// exits upward unchanged (it does not re-enter left — spec.md §4.4
// ordering rule); a DownCommand(CB) recurses into right via
// loopRight. Items from a Many are processed in order and each
// sub-dispatch's result is fully materialized (spec.md calls this
// "dealias") before the next item is considered, so nothing is ever
// overwritten before it is used.
func (v *verticalPipePair[CA, CB, CBB, EA, EB, EBB]) loopLeft(em Emission[EA, CB]) Emission[EA, CBB] {
	switch em.Kind() {
	case KindEmpty:
		return Nothing[EA, CBB]()
	case KindEvent:
		return SingleEvent[EA, CBB](em.event)
	case KindCommand:
		return v.loopRight(v.right.OnCommand(em.command))
	default:
		out := make([]Item[EA, CBB], 0, len(em.items))
		for _, it := range em.items {
			if it.IsEvent {
				out = append(out, Item[EA, CBB]{IsEvent: true, Event: it.Event})
				continue
			}
			sub := v.loopRight(v.right.OnCommand(it.Command))
			out = append(out, sub.Items()...)
		}
		return Many(out)
	}
}

// loopRight routes an Emission[EB,CBB] produced by right: a
// DownCommand(CBB) exits downward unchanged; an UpEvent(EB) recurses
// into left via loopLeft, and onward recursion continues for as long
// as the cross-calls keep producing items for the other side.
func (v *verticalPipePair[CA, CB, CBB, EA, EB, EBB]) loopRight(em Emission[EB, CBB]) Emission[EA, CBB] {
	switch em.Kind() {
	case KindEmpty:
		return Nothing[EA, CBB]()
	case KindCommand:
		return SingleCommand[EA, CBB](em.command)
	case KindEvent:
		return v.loopLeft(v.left.OnEvent(em.event))
	default:
		out := make([]Item[EA, CBB], 0, len(em.items))
		for _, it := range em.items {
			if !it.IsEvent {
				out = append(out, Item[EA, CBB]{IsEvent: false, Command: it.Command})
				continue
			}
			sub := v.loopLeft(v.left.OnEvent(it.Event))
			out = append(out, sub.Items()...)
		}
		return Many(out)
	}
}

// OnManagement fans the message to both children (spec.md §4.4,
// invariant 4 in §3: every atomic stage is visited exactly once per
// top-level management injection). Each child's reply is routed
// through the matching loop — left's through loopLeft, right's
// through loopRight — exactly as if the child had produced that
// Emission during ordinary traffic, so a stage "in the middle" can
// inject effects through composition the same way it would inline.
// The left result is appended before the right result.
func (v *verticalPipePair[CA, CB, CBB, EA, EB, EBB]) OnManagement(msg Message) Emission[EA, CBB] {
	leftReply := v.loopLeft(v.left.OnManagement(msg))
	rightReply := v.loopRight(v.right.OnManagement(msg))
	return leftReply.Append(rightReply)
}
