// Package cipher implements an AEAD encryption stage using
// golang.org/x/crypto/chacha20poly1305. The teacher repository reaches
// for golang.org/x/crypto to drive outbound SSH sessions
// (internal/mirage); this stage repurposes the same dependency for a
// concern actually named by this repository's domain: encrypting
// payloads in transit between two stages of a pipeline, the way the
// teacher's mirage service wraps a plaintext command channel in an
// encrypted transport.
package cipher

import (
	stdcipher "crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/danmuck/conduit/internal/pipeline"
)

var (
	// ErrCiphertextTooShort is raised from OnEvent when a payload is
	// smaller than one nonce, so it cannot possibly hold a sealed
	// message.
	ErrCiphertextTooShort = errors.New("cipher: ciphertext shorter than nonce")
)

// Stage seals outgoing payloads and opens incoming ones with a single
// shared AEAD key. Key must be chacha20poly1305.KeySize bytes.
type Stage struct {
	key []byte
}

// New builds a Stage from a 32-byte key. It panics on a wrong-size key
// since this is a construction-time programmer error, not a runtime
// one — mirrors the teacher's own preference for failing loudly on
// misconfigured crypto material rather than deferring to the first
// call.
func New(key []byte) Stage {
	if len(key) != chacha20poly1305.KeySize {
		panic(fmt.Errorf("cipher: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key)))
	}
	return Stage{key: key}
}

func (s Stage) Apply(ctx *pipeline.Context) pipeline.PipePair[[]byte, []byte, []byte, []byte] {
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		panic(fmt.Errorf("cipher: build aead: %w", err))
	}
	return &pipePair{aead: aead}
}

type pipePair struct {
	aead stdcipher.AEAD
}

// OnCommand seals the payload under a freshly drawn random nonce,
// prepended to the returned ciphertext.
func (p *pipePair) OnCommand(payload []byte) pipeline.Emission[[]byte, []byte] {
	nonce := make([]byte, p.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		panic(fmt.Errorf("cipher: draw nonce: %w", err))
	}
	sealed := p.aead.Seal(nonce, nonce, payload, nil)
	return pipeline.SingleCommand[[]byte, []byte](sealed)
}

// OnEvent opens a payload produced by OnCommand's wire shape
// (nonce-prefixed ciphertext). A payload that is too short to hold a
// nonce, or that fails authentication, panics — spec.md §7 case 3, a
// failure local to this stage.
func (p *pipePair) OnEvent(payload []byte) pipeline.Emission[[]byte, []byte] {
	nonceSize := p.aead.NonceSize()
	if len(payload) < nonceSize {
		panic(ErrCiphertextTooShort)
	}
	nonce, ciphertext := payload[:nonceSize], payload[nonceSize:]
	plaintext, err := p.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		panic(fmt.Errorf("cipher: open: %w", err))
	}
	return pipeline.SingleEvent[[]byte, []byte](plaintext)
}

func (p *pipePair) OnManagement(msg pipeline.Message) pipeline.Emission[[]byte, []byte] {
	return pipeline.Nothing[[]byte, []byte]()
}
