package pipeline

import "testing"

func TestEmissionConstructorsReportKind(t *testing.T) {
	if got := Nothing[string, string]().Kind(); got != KindEmpty {
		t.Fatalf("Nothing kind = %v, want KindEmpty", got)
	}
	if got := SingleEvent[string, string]("e").Kind(); got != KindEvent {
		t.Fatalf("SingleEvent kind = %v, want KindEvent", got)
	}
	if got := SingleCommand[string, string]("c").Kind(); got != KindCommand {
		t.Fatalf("SingleCommand kind = %v, want KindCommand", got)
	}
}

func TestManyCollapsesZeroAndOneItem(t *testing.T) {
	if got := Many[string, string](nil).Kind(); got != KindEmpty {
		t.Fatalf("Many(nil) kind = %v, want KindEmpty", got)
	}
	one := Many([]Item[string, string]{{IsEvent: true, Event: "e"}})
	if one.Kind() != KindEvent {
		t.Fatalf("Many(1 event) kind = %v, want KindEvent", one.Kind())
	}
	oneCmd := Many([]Item[string, string]{{IsEvent: false, Command: "c"}})
	if oneCmd.Kind() != KindCommand {
		t.Fatalf("Many(1 command) kind = %v, want KindCommand", oneCmd.Kind())
	}
}

func TestManyPreservesOrderForMultipleItems(t *testing.T) {
	items := []Item[string, string]{
		{IsEvent: true, Event: "e1"},
		{IsEvent: false, Command: "c1"},
		{IsEvent: true, Event: "e2"},
	}
	em := Many(items)
	if em.Kind() != KindMany {
		t.Fatalf("Kind = %v, want KindMany", em.Kind())
	}
	got := em.Items()
	if len(got) != 3 {
		t.Fatalf("len(Items()) = %d, want 3", len(got))
	}
	for i, want := range items {
		if got[i] != want {
			t.Fatalf("item %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestAppendOrdersLeftBeforeRight(t *testing.T) {
	left := SingleEvent[string, string]("left")
	right := SingleCommand[string, string]("right")
	got := left.Append(right).Items()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].IsEvent || got[0].Event != "left" {
		t.Fatalf("item 0 = %+v", got[0])
	}
	if got[1].IsEvent || got[1].Command != "right" {
		t.Fatalf("item 1 = %+v", got[1])
	}
}

func TestAppendWithEmptySideIsIdentity(t *testing.T) {
	single := SingleEvent[string, string]("e")
	if got := single.Append(Nothing[string, string]()); len(got.Items()) != 1 {
		t.Fatalf("Append(Nothing) changed item count: %+v", got.Items())
	}
	if got := Nothing[string, string]().Append(single); len(got.Items()) != 1 {
		t.Fatalf("Nothing.Append(single) changed item count: %+v", got.Items())
	}
}

func TestDealiasIsIdentity(t *testing.T) {
	em := SingleCommand[string, string]("c")
	if got := Dealias(em); got.Kind() != em.Kind() || got.Items()[0] != em.Items()[0] {
		t.Fatalf("Dealias changed the Emission: got=%+v want=%+v", got, em)
	}
}
