// Package tick implements the tick stage spec.md §6 uses to pin down
// the management contract: a symmetric passthrough stage whose
// management port, on receiving a distinguished Tick message, asks the
// pipeline's Scheduler capability to redeliver the same Tick after a
// configured interval.
package tick

import (
	"time"

	"github.com/danmuck/conduit/internal/pipeline"
)

// Tick is the distinguished management message this stage reacts to.
// ID lets multiple tick stages composed into one pipeline distinguish
// their own ticks from a sibling's.
type Tick struct {
	ID string
}

// Stage builds a tick stage with the given redelivery interval.
type Stage[T any] struct {
	Interval time.Duration
	ID       string
}

// New returns a tick Stage for port type T, ticking every interval.
func New[T any](id string, interval time.Duration) Stage[T] {
	return Stage[T]{Interval: interval, ID: id}
}

func (s Stage[T]) Apply(ctx *pipeline.Context) pipeline.PipePair[T, T, T, T] {
	return &pipePair[T]{ctx: ctx, interval: s.Interval, id: s.ID}
}

type pipePair[T any] struct {
	ctx      *pipeline.Context
	interval time.Duration
	id       string
}

// OnCommand forwards unchanged via the fast path.
func (p *pipePair[T]) OnCommand(cmd T) pipeline.Emission[T, T] {
	return pipeline.SingleCommand[T, T](cmd)
}

// OnEvent forwards unchanged via the fast path.
func (p *pipePair[T]) OnEvent(evt T) pipeline.Emission[T, T] {
	return pipeline.SingleEvent[T, T](evt)
}

// OnManagement reacts only to a Tick addressed to this stage's ID; any
// other message is declined. The response is always empty — the
// rescheduled Tick arrives later as its own management injection, not
// as part of this call's Emission.
func (p *pipePair[T]) OnManagement(msg pipeline.Message) pipeline.Emission[T, T] {
	tk, ok := msg.(Tick)
	if !ok || tk.ID != p.id {
		return pipeline.Nothing[T, T]()
	}
	if p.ctx != nil && p.ctx.Scheduler != nil {
		p.ctx.Scheduler.Schedule(p.interval, func() {
			if p.ctx.Redeliver != nil {
				p.ctx.Redeliver(tk)
			}
		})
	}
	return pipeline.Nothing[T, T]()
}
