package fields

import (
	"testing"

	"github.com/danmuck/conduit/internal/pipeline"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fs := FieldSet{
		{ID: 1, Type: TypeString, Value: []byte("hello")},
		{ID: 2, Type: TypeU32, Value: []byte{0, 0, 0, 7}},
		{ID: 3, Type: TypeBytes, Value: nil},
	}

	got, err := Decode(Encode(fs))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(fs) {
		t.Fatalf("got %d fields, want %d", len(got), len(fs))
	}
	for i := range fs {
		if got[i].ID != fs[i].ID || got[i].Type != fs[i].Type || string(got[i].Value) != string(fs[i].Value) {
			t.Fatalf("field %d = %+v, want %+v", i, got[i], fs[i])
		}
	}
}

func TestDecodeShortHeaderErrors(t *testing.T) {
	_, err := Decode([]byte{0, 1, TypeU8})
	if err != ErrShortFieldHeader {
		t.Fatalf("err = %v, want ErrShortFieldHeader", err)
	}
}

func TestDecodeShortValueErrors(t *testing.T) {
	buf := Encode(FieldSet{{ID: 1, Type: TypeString, Value: []byte("hello")}})
	_, err := Decode(buf[:len(buf)-1])
	if err != ErrShortFieldValue {
		t.Fatalf("err = %v, want ErrShortFieldValue", err)
	}
}

func TestGetReturnsFirstMatch(t *testing.T) {
	fs := FieldSet{{ID: 5, Type: TypeU8, Value: []byte{9}}}
	f, ok := fs.Get(5)
	if !ok || f.Value[0] != 9 {
		t.Fatalf("Get(5) = %+v, %v", f, ok)
	}
	if _, ok := fs.Get(6); ok {
		t.Fatalf("Get(6) found a field that was never added")
	}
}

func TestMustTypeMismatch(t *testing.T) {
	f := Field{ID: 1, Type: TypeU8}
	if err := MustType(f, TypeU8); err != nil {
		t.Fatalf("MustType matched = %v, want nil", err)
	}
	if err := MustType(f, TypeString); err == nil {
		t.Fatalf("MustType mismatch = nil, want error")
	}
}

func TestStageOnCommandAndOnEventRoundTrip(t *testing.T) {
	ctx := pipeline.NewContext(nil)
	pp := New().Apply(ctx)

	fs := FieldSet{{ID: 1, Type: TypeU8, Value: []byte{42}}}
	cmd := pp.OnCommand(fs).Items()
	if len(cmd) != 1 {
		t.Fatalf("got %d command items, want 1", len(cmd))
	}

	evt := pp.OnEvent(cmd[0].Command).Items()
	if len(evt) != 1 {
		t.Fatalf("got %d event items, want 1", len(evt))
	}
	got := evt[0].Event
	if len(got) != 1 || got[0].ID != 1 || got[0].Value[0] != 42 {
		t.Fatalf("got %+v, want round-tripped field", got)
	}
}

func TestStageOnEventPanicsOnMalformedPayload(t *testing.T) {
	ctx := pipeline.NewContext(nil)
	pp := New().Apply(ctx)

	defer func() {
		if recover() == nil {
			t.Fatalf("OnEvent did not panic on a malformed payload")
		}
	}()
	pp.OnEvent([]byte{0, 1})
}
