package tick

import (
	"testing"
	"time"

	"github.com/danmuck/conduit/internal/pipeline"
)

func TestCommandAndEventPassThroughUnchanged(t *testing.T) {
	ctx := pipeline.NewContext(&ManualScheduler{})
	pp := New[string]("clock", time.Second).Apply(ctx)

	if got := pp.OnCommand("cmd").Items(); len(got) != 1 || got[0].Command != "cmd" {
		t.Fatalf("got %+v, want single command cmd", got)
	}
	if got := pp.OnEvent("evt").Items(); len(got) != 1 || got[0].Event != "evt" {
		t.Fatalf("got %+v, want single event evt", got)
	}
}

func TestManagementDeclinesUnrelatedMessage(t *testing.T) {
	ctx := pipeline.NewContext(&ManualScheduler{})
	pp := New[string]("clock", time.Second).Apply(ctx)

	if got := pp.OnManagement("not a tick"); !got.IsEmpty() {
		t.Fatalf("got %+v, want empty", got.Items())
	}
}

func TestManagementIgnoresTickForAnotherStageID(t *testing.T) {
	sched := &ManualScheduler{}
	ctx := pipeline.NewContext(sched)
	pp := New[string]("clock-a", time.Second).Apply(ctx)

	pp.OnManagement(Tick{ID: "clock-b"})
	if sched.Pending() != 0 {
		t.Fatalf("scheduled %d callbacks, want 0 for a tick addressed to another stage", sched.Pending())
	}
}

func TestTickSchedulesRedeliveryAndResponseIsEmpty(t *testing.T) {
	sched := &ManualScheduler{}
	ctx := pipeline.NewContext(sched)
	pp := New[string]("clock", 5*time.Second).Apply(ctx)

	redelivered := 0
	var lastMsg pipeline.Message
	ctx.Redeliver = func(msg pipeline.Message) {
		redelivered++
		lastMsg = msg
	}

	em := pp.OnManagement(Tick{ID: "clock"})
	if !em.IsEmpty() {
		t.Fatalf("got %+v, want empty management response", em.Items())
	}
	if sched.Pending() != 1 {
		t.Fatalf("scheduled %d callbacks, want 1", sched.Pending())
	}

	sched.FireAll()
	if redelivered != 1 {
		t.Fatalf("redelivered %d times, want 1", redelivered)
	}
	if tk, ok := lastMsg.(Tick); !ok || tk.ID != "clock" {
		t.Fatalf("redelivered message = %+v, want Tick{ID: clock}", lastMsg)
	}
}
