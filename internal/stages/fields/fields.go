// Package fields implements a TLV structured-field codec stage,
// grounded on the teacher repository's internal/protocol/tlv package:
// the same type-tagged, length-prefixed field encoding, adapted into
// a Stage that sits above a framer (internal/stages/framer) — its
// downward output is the byte payload the framer then length-prefixes,
// and its upward input is a de-framed payload it decodes back into
// structured fields. This is the "encoding" layer spec.md §1 names in
// its list of example stages but leaves unspecified.
package fields

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/danmuck/conduit/internal/pipeline"
)

const headerLen = 7

// Field type tags, carried over from the teacher's tlv contract.
const (
	TypeU8     uint8 = 1
	TypeU16    uint8 = 2
	TypeU32    uint8 = 3
	TypeU64    uint8 = 4
	TypeBool   uint8 = 5
	TypeString uint8 = 6
	TypeBytes  uint8 = 7
)

var (
	ErrShortFieldHeader = errors.New("fields: short field header")
	ErrShortFieldValue  = errors.New("fields: short field value")
)

// Field is one structured field: a numeric ID, a type tag, and a raw
// value. FieldSet is the command/event port type for this stage.
type Field struct {
	ID    uint16
	Type  uint8
	Value []byte
}

type FieldSet []Field

// Get returns the first field with the given ID.
func (fs FieldSet) Get(id uint16) (Field, bool) {
	for _, f := range fs {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Stage is a stateless TLV field codec: no configuration, no buffering
// (a complete frame payload always arrives atomically from the layer
// below).
type Stage struct{}

func New() Stage {
	return Stage{}
}

func (Stage) Apply(ctx *pipeline.Context) pipeline.PipePair[FieldSet, []byte, FieldSet, []byte] {
	return pipePair{}
}

type pipePair struct{}

// OnCommand encodes a structured FieldSet into its wire bytes.
func (pipePair) OnCommand(fs FieldSet) pipeline.Emission[FieldSet, []byte] {
	return pipeline.SingleCommand[FieldSet, []byte](Encode(fs))
}

// OnEvent decodes a complete payload into a FieldSet. A malformed
// payload panics; the Injector routes it to the event sink as a
// failure (spec.md §7 case 3).
func (pipePair) OnEvent(payload []byte) pipeline.Emission[FieldSet, []byte] {
	fs, err := Decode(payload)
	if err != nil {
		panic(err)
	}
	return pipeline.SingleEvent[FieldSet, []byte](fs)
}

func (pipePair) OnManagement(msg pipeline.Message) pipeline.Emission[FieldSet, []byte] {
	return pipeline.Nothing[FieldSet, []byte]()
}

// Encode serializes a FieldSet in field order: 2-byte ID, 1-byte type,
// 4-byte big-endian value length, value bytes.
func Encode(fs FieldSet) []byte {
	out := make([]byte, 0, len(fs)*headerLen)
	for _, f := range fs {
		buf := make([]byte, headerLen+len(f.Value))
		binary.BigEndian.PutUint16(buf[0:2], f.ID)
		buf[2] = f.Type
		binary.BigEndian.PutUint32(buf[3:7], uint32(len(f.Value)))
		copy(buf[7:], f.Value)
		out = append(out, buf...)
	}
	return out
}

// Decode parses a byte payload produced by Encode back into a
// FieldSet, preserving unknown field IDs.
func Decode(payload []byte) (FieldSet, error) {
	fs := make(FieldSet, 0)
	i := 0
	for i < len(payload) {
		if len(payload)-i < headerLen {
			return nil, ErrShortFieldHeader
		}
		id := binary.BigEndian.Uint16(payload[i : i+2])
		typ := payload[i+2]
		length := binary.BigEndian.Uint32(payload[i+3 : i+7])
		i += headerLen
		if uint32(len(payload)-i) < length {
			return nil, ErrShortFieldValue
		}
		value := make([]byte, length)
		copy(value, payload[i:i+int(length)])
		i += int(length)
		fs = append(fs, Field{ID: id, Type: typ, Value: value})
	}
	return fs, nil
}

// MustType returns an error if f's type tag does not match expected.
func MustType(f Field, expected uint8) error {
	if f.Type != expected {
		return fmt.Errorf("fields: field %d type mismatch: got %d want %d", f.ID, f.Type, expected)
	}
	return nil
}
