package secrethandshake

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/hermitnet/secrethandshake/crypto"
)

// stepKind classifies what a handshake step does with the transport.
type stepKind uint8

const (
	stepWrite stepKind = iota
	stepFlush
	stepRead
)

// step is one state of the handshake state machine: either writing the
// current message from the buffer, flushing buffered writes, or reading the
// next expected message into the buffer and verifying it.
type step struct {
	kind stepKind
	size int
	name string

	// fill materializes the outgoing message into the buffer when the
	// machine enters a write step.
	fill func(out []byte) error
	// verify consumes a fully received message at the end of a read step.
	// Returning false is a terminal cryptographic failure.
	verify func(msg []byte) bool
}

// flusher is implemented by buffered transports (such as *bufio.Writer
// wrappers) that need an explicit flush before the peer can see a message.
type flusher interface {
	Flush() error
}

// Handshake is one in-progress handshake attempt. It exclusively owns its
// transport stream and a single buffer sized to the largest message, which
// is reused across all four messages and zeroed on every exit path.
//
// A Handshake is not safe for concurrent use; concurrency across attempts
// comes from running independent attempts, which share no state.
type Handshake struct {
	stream  io.ReadWriter
	role    string
	steps   []step
	current int
	offset  int
	buf     [bufferSize]byte

	outcome func() *Outcome
	cleanup func()
	done    bool
}

// NewClientHandshake begins the initiating side of a handshake over stream
// with a server whose long-term public key is already known. The key
// material is copied into the attempt, so the attempt's lifetime is
// independent of the caller's copies. The ephemeral pair must be freshly
// generated for this attempt and never reused.
func NewClientHandshake(stream io.ReadWriter, networkIdentifier [NetworkIdentifierSize]byte, longterm crypto.SigningKeyPair, ephemeral crypto.ExchangeKeyPair, serverPublicKey [32]byte) (*Handshake, error) {
	if stream == nil {
		return nil, errors.New("nil stream")
	}

	state := newClientState(networkIdentifier, longterm, ephemeral, serverPublicKey)
	h := &Handshake{
		stream:  stream,
		role:    "client",
		outcome: state.outcome,
		cleanup: state.cleanup,
		steps: []step{
			{kind: stepWrite, size: helloSize, name: "write client hello", fill: state.createClientHello},
			{kind: stepFlush, name: "flush client hello"},
			{kind: stepRead, size: helloSize, name: "read server hello", verify: state.verifyServerHello},
			{kind: stepWrite, size: clientAuthSize, name: "write client auth", fill: state.createClientAuth},
			{kind: stepFlush, name: "flush client auth"},
			{kind: stepRead, size: serverAcceptSize, name: "read server accept", verify: state.verifyServerAccept},
		},
	}

	// The hello is materialized up front so the first Resume can start
	// writing immediately.
	if err := h.materialize(); err != nil {
		h.terminate()
		return nil, err
	}
	return h, nil
}

// NewServerHandshake begins the responding side of a handshake over stream.
// The client's long-term identity is not supplied; it is learned and
// verified during the handshake and reported in the Outcome.
func NewServerHandshake(stream io.ReadWriter, networkIdentifier [NetworkIdentifierSize]byte, longterm crypto.SigningKeyPair, ephemeral crypto.ExchangeKeyPair) (*Handshake, error) {
	if stream == nil {
		return nil, errors.New("nil stream")
	}

	state := newServerState(networkIdentifier, longterm, ephemeral)
	h := &Handshake{
		stream:  stream,
		role:    "server",
		outcome: state.outcome,
		cleanup: state.cleanup,
		steps: []step{
			{kind: stepRead, size: helloSize, name: "read client hello", verify: state.verifyClientHello},
			{kind: stepWrite, size: helloSize, name: "write server hello", fill: state.createServerHello},
			{kind: stepFlush, name: "flush server hello"},
			{kind: stepRead, size: clientAuthSize, name: "read client auth", verify: state.verifyClientAuth},
			{kind: stepWrite, size: serverAcceptSize, name: "write server accept", fill: state.createServerAccept},
			{kind: stepFlush, name: "flush server accept"},
		},
	}
	return h, nil
}

// Resume drives the handshake as far as the transport currently allows.
//
// It returns (nil, ErrWouldBlock) when the transport reported it cannot
// make progress; the attempt stays live and a later Resume re-attempts the
// same partial operation without re-deriving or re-sending anything. Any
// other return is terminal: either the completed Outcome, or an error
// (ErrCrypto for verification failures, a wrapped transport error
// otherwise). On every terminal return the buffer and all derived secrets
// have been zeroed and the stream is available through Stream.
//
// Calling Resume on an attempt that already reached a terminal state is a
// caller logic defect and panics.
func (h *Handshake) Resume() (*Outcome, error) {
	if h.done {
		panic("secrethandshake: Resume called on a terminated handshake attempt")
	}

	for h.current < len(h.steps) {
		st := &h.steps[h.current]

		var err error
		switch st.kind {
		case stepWrite:
			err = h.writeStep(st)
		case stepFlush:
			err = h.flushStep(st)
		case stepRead:
			err = h.readStep(st)
		}
		if err != nil {
			if errors.Is(err, ErrWouldBlock) {
				// Suspended: state and offset are preserved exactly.
				return nil, ErrWouldBlock
			}
			h.terminate()
			logrus.WithFields(logrus.Fields{
				"function": "Resume",
				"role":     h.role,
				"state":    st.name,
			}).Error("handshake failed")
			return nil, err
		}

		if err := h.advance(); err != nil {
			h.terminate()
			return nil, ErrCrypto
		}
	}

	outcome := h.outcome()
	h.terminate()
	logrus.WithFields(logrus.Fields{
		"function": "Resume",
		"role":     h.role,
	}).Debug("handshake complete")
	return outcome, nil
}

// Abort cancels an in-progress attempt, zeroing the buffer and all derived
// secrets. It is a no-op on an attempt that already reached a terminal
// state. The stream is left wherever the handshake last touched it; if the
// abort happens mid-message the peer sees a truncated message, never a
// silently resynchronized one.
func (h *Handshake) Abort() {
	if h.done {
		return
	}
	h.terminate()
}

// Stream returns the transport this attempt owns. Once Resume has returned
// a terminal result (or Abort has been called) the stream is idle and
// ownership passes back to the caller, which can close or inspect it.
func (h *Handshake) Stream() io.ReadWriter {
	return h.stream
}

// writeStep writes the unsent remainder of the current message. A
// zero-length write with no error means the transport stalled, which is
// fatal.
func (h *Handshake) writeStep(st *step) error {
	for h.offset < st.size {
		n, err := h.stream.Write(h.buf[h.offset:st.size])
		h.offset += n
		if h.offset >= st.size {
			break
		}
		if err != nil {
			if errors.Is(err, ErrWouldBlock) {
				return err
			}
			return fmt.Errorf("%s: %w", st.name, err)
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", st.name, io.ErrShortWrite)
		}
	}
	return nil
}

func (h *Handshake) flushStep(st *step) error {
	f, ok := h.stream.(flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		if errors.Is(err, ErrWouldBlock) {
			return err
		}
		return fmt.Errorf("%s: %w", st.name, err)
	}
	return nil
}

// readStep collects the expected number of bytes into the buffer, then
// hands the complete message to the engine. A zero-length read or EOF
// before the message is complete is a fatal framing failure.
func (h *Handshake) readStep(st *step) error {
	for h.offset < st.size {
		n, err := h.stream.Read(h.buf[h.offset:st.size])
		h.offset += n
		if h.offset >= st.size {
			break
		}
		if err != nil {
			if errors.Is(err, ErrWouldBlock) {
				return err
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%s: %w", st.name, io.ErrUnexpectedEOF)
			}
			return fmt.Errorf("%s: %w", st.name, err)
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", st.name, io.ErrUnexpectedEOF)
		}
	}

	if !st.verify(h.buf[:st.size]) {
		return ErrCrypto
	}
	return nil
}

// advance moves to the next step, resetting the offset and materializing
// the outgoing message if the next step is a write.
func (h *Handshake) advance() error {
	logrus.WithFields(logrus.Fields{
		"function": "Resume",
		"role":     h.role,
		"state":    h.steps[h.current].name,
	}).Debug("handshake step complete")

	h.current++
	h.offset = 0
	return h.materialize()
}

func (h *Handshake) materialize() error {
	if h.current >= len(h.steps) {
		return nil
	}
	st := &h.steps[h.current]
	if st.kind != stepWrite {
		return nil
	}
	return st.fill(h.buf[:st.size])
}

// terminate marks the attempt done and erases everything secret-bearing:
// the message buffer and the engine's accumulated key material.
func (h *Handshake) terminate() {
	crypto.ZeroBytes(h.buf[:])
	h.cleanup()
	h.done = true
}
