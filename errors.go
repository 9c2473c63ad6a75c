package secrethandshake

import "errors"

var (
	// ErrCrypto indicates that cryptographic verification failed at some
	// step of the handshake: a network-identifier mismatch, a bad
	// signature, or a tampered sealed message. The cause is deliberately
	// not distinguished so a failed handshake cannot be used as an oracle
	// for which check rejected it.
	ErrCrypto = errors.New("cryptographic verification failed")

	// ErrWouldBlock is returned by Resume when the transport cannot
	// currently make progress. Non-blocking transports signal this by
	// returning an error matching ErrWouldBlock (directly or wrapped) from
	// Read, Write, or Flush. The attempt stays valid and a later Resume
	// picks up exactly where it left off.
	ErrWouldBlock = errors.New("operation would block")
)
