// Package handshake implements a management-driven registration stage,
// grounded on the teacher repository's internal/protocol/session
// control envelope (Registration/RegistrationAck, JSON-encoded,
// validated before being trusted). Where the teacher reads and writes
// that envelope directly over a bufio.Reader/io.Writer, this stage
// reacts to a Register management message and produces its
// RegistrationAck as an ordinary upward event — demonstrating spec.md
// §1's claim that a middle stage "can inject effects as if it had
// produced them during ordinary traffic." Its command/event ports are
// plain []byte, the same wire-level shape cipher and framer use, so it
// composes directly alongside them in a recipe-driven byte pipeline.
package handshake

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danmuck/conduit/internal/pipeline"
)

const (
	AckStatusAccepted = "accepted"
	AckStatusRejected = "rejected"
)

var (
	ErrInvalidRegistration = errors.New("handshake: invalid registration")
)

// Register is the distinguished management message this stage reacts
// to, mirroring the teacher's Registration payload.
type Register struct {
	PeerID       string
	Capabilities []string
}

func (r Register) validate(required []string) error {
	if strings.TrimSpace(r.PeerID) == "" {
		return fmt.Errorf("%w: missing peer_id", ErrInvalidRegistration)
	}
	have := make(map[string]bool, len(r.Capabilities))
	for _, c := range r.Capabilities {
		have[c] = true
	}
	for _, need := range required {
		if !have[need] {
			return fmt.Errorf("%w: missing required capability %q", ErrInvalidRegistration, need)
		}
	}
	return nil
}

// RegistrationAck is the JSON body of the event this stage emits in
// response to a Register management message.
type RegistrationAck struct {
	AckID   string `json:"ack_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
	PeerID  string `json:"peer_id"`
}

// MaxAttempts bounds how many times a registration is attempted for a
// peer, counting the first delivery: a rejected registration is
// retried at most MaxAttempts-1 times before this stage gives up.
const MaxAttempts = 3

// Stage validates a registering peer's declared capabilities against
// RequiredCapabilities before accepting it. A rejected registration is
// retried with backoff via the Context's Scheduler/Redeliver
// capabilities, up to MaxAttempts, mirroring the teacher's
// NextBackoffDelay-driven reconnect loop.
type Stage struct {
	RequiredCapabilities []string
	Backoff              BackoffConfig
}

func New(required ...string) Stage {
	return Stage{RequiredCapabilities: required, Backoff: DefaultBackoff()}
}

func (s Stage) Apply(ctx *pipeline.Context) pipeline.PipePair[[]byte, []byte, []byte, []byte] {
	return &pipePair{
		ctx:        ctx,
		required:   s.RequiredCapabilities,
		backoff:    s.Backoff,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		registered: make(map[string]bool),
		attempts:   make(map[string]int),
	}
}

type pipePair struct {
	ctx        *pipeline.Context
	required   []string
	backoff    BackoffConfig
	rng        *rand.Rand
	registered map[string]bool
	attempts   map[string]int
}

// OnCommand passes ordinary traffic through unchanged; registration
// happens only over the management port.
func (p *pipePair) OnCommand(payload []byte) pipeline.Emission[[]byte, []byte] {
	return pipeline.SingleCommand[[]byte, []byte](payload)
}

func (p *pipePair) OnEvent(payload []byte) pipeline.Emission[[]byte, []byte] {
	return pipeline.SingleEvent[[]byte, []byte](payload)
}

// OnManagement reacts to a Register message by validating its declared
// capabilities and producing a JSON-encoded RegistrationAck event. Any
// other management message is declined.
func (p *pipePair) OnManagement(msg pipeline.Message) pipeline.Emission[[]byte, []byte] {
	reg, ok := msg.(Register)
	if !ok {
		return pipeline.Nothing[[]byte, []byte]()
	}

	ack := RegistrationAck{
		AckID:  uuid.NewString(),
		PeerID: reg.PeerID,
	}
	if err := reg.validate(p.required); err != nil {
		ack.Status = AckStatusRejected
		ack.Message = err.Error()
		p.scheduleRetry(reg)
	} else {
		ack.Status = AckStatusAccepted
		p.registered[reg.PeerID] = true
		delete(p.attempts, reg.PeerID)
	}

	payload, err := json.Marshal(ack)
	if err != nil {
		panic(fmt.Errorf("handshake: marshal ack: %w", err))
	}
	return pipeline.SingleEvent[[]byte, []byte](payload)
}

// IsRegistered reports whether a peer has a prior accepted
// registration on this stage instance.
func (p *pipePair) IsRegistered(peerID string) bool {
	return p.registered[peerID]
}

// scheduleRetry asks the Context's Scheduler to redeliver the same
// Register message after a backoff delay, up to MaxAttempts, the way
// the teacher's session reconnect loop schedules its next attempt
// with NextBackoffDelay before giving up.
func (p *pipePair) scheduleRetry(reg Register) {
	if p.ctx == nil || p.ctx.Scheduler == nil || p.ctx.Redeliver == nil {
		return
	}
	p.attempts[reg.PeerID]++
	attempt := p.attempts[reg.PeerID]
	if attempt >= MaxAttempts {
		return
	}
	delay := nextBackoffDelay(p.backoff, attempt, p.rng)
	p.ctx.Scheduler.Schedule(delay, func() {
		p.ctx.Redeliver(reg)
	})
}
