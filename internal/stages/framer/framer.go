// Package framer implements the length-prefix framer spec.md §6 uses
// to pin down the Stage contract: a symmetric byte-sequence stage that
// prepends/peels a 4-byte big-endian length prefix, grounded on the
// framing idiom of the teacher repository's internal/protocol/frame
// package (big-endian fixed headers, read/write size limits) but
// trimmed to exactly the wire shape spec.md §6 describes.
package framer

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/danmuck/conduit/internal/pipeline"
)

const lengthPrefixLen = 4

// ErrFrameTooLarge is raised from OnEvent when a frame's declared
// length exceeds MaxLen. This is the read-side of the asymmetry
// spec.md §9 calls out: the write side drops oversize payloads
// silently, the read side raises.
var ErrFrameTooLarge = errors.New("framer: frame exceeds max length")

// Stage builds a length-prefix framer bounded by MaxLen. MaxLen is the
// maximum total framed length (payload + the 4-byte prefix); a MaxLen
// of 0 means unbounded.
type Stage struct {
	MaxLen uint32
}

// New returns a framer Stage with the given maximum framed length.
func New(maxLen uint32) Stage {
	return Stage{MaxLen: maxLen}
}

func (s Stage) Apply(ctx *pipeline.Context) pipeline.PipePair[[]byte, []byte, []byte, []byte] {
	return &pipePair{maxLen: s.MaxLen}
}

// pipePair's buf holds bytes received but not yet resolved into a
// complete frame. It is stage-local state, allocated once per Apply
// call (spec.md §4.3).
type pipePair struct {
	maxLen uint32
	buf    []byte
}

// OnCommand prepends a 4-byte big-endian length of payload+4 to the
// payload. If the framed length exceeds MaxLen, the command is
// silently dropped — spec.md §6's write-side best-effort half of the
// oversize asymmetry.
func (p *pipePair) OnCommand(payload []byte) pipeline.Emission[[]byte, []byte] {
	total := uint32(len(payload)) + lengthPrefixLen
	if p.maxLen > 0 && total > p.maxLen {
		return pipeline.Nothing[[]byte, []byte]()
	}
	framed := make([]byte, total)
	binary.BigEndian.PutUint32(framed, total)
	copy(framed[lengthPrefixLen:], payload)
	return pipeline.SingleCommand[[]byte, []byte](framed)
}

// OnEvent appends incoming bytes to the buffer then repeatedly peels
// complete frames off the front. An oversize declared length is a
// fatal error (panics, caught by the Injector — spec.md §6, §7 case 3);
// an incomplete frame is retained for the next call.
func (p *pipePair) OnEvent(chunk []byte) pipeline.Emission[[]byte, []byte] {
	p.buf = append(p.buf, chunk...)

	var payloads [][]byte
	for {
		if len(p.buf) < lengthPrefixLen {
			break
		}
		length := binary.BigEndian.Uint32(p.buf[:lengthPrefixLen])
		if p.maxLen > 0 && length > p.maxLen {
			panic(fmt.Errorf("%w: declared length %d exceeds max %d", ErrFrameTooLarge, length, p.maxLen))
		}
		if uint32(len(p.buf)) < length {
			break
		}
		payload := make([]byte, length-lengthPrefixLen)
		copy(payload, p.buf[lengthPrefixLen:length])
		payloads = append(payloads, payload)
		p.buf = p.buf[length:]
	}

	switch len(payloads) {
	case 0:
		return pipeline.Nothing[[]byte, []byte]()
	case 1:
		return pipeline.SingleEvent[[]byte, []byte](payloads[0])
	default:
		items := make([]pipeline.Item[[]byte, []byte], len(payloads))
		for i, pl := range payloads {
			items[i] = pipeline.Item[[]byte, []byte]{IsEvent: true, Event: pl}
		}
		return pipeline.Many(items)
	}
}

func (p *pipePair) OnManagement(msg pipeline.Message) pipeline.Emission[[]byte, []byte] {
	return pipeline.Nothing[[]byte, []byte]()
}
