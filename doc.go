// Package secrethandshake implements the secret-handshake mutual
// authentication protocol: two parties, each holding a long-term Ed25519
// signing identity and a fresh Curve25519 ephemeral key pair, exchange four
// fixed-size messages over a byte stream to prove membership in the same
// network, authenticate each other's long-term identity, and derive a pair
// of forward-secret directional session keys.
//
// The package performs only the handshake. The encrypted transport that
// uses the derived keys is an external consumer of the [Outcome].
//
// # Usage
//
// Each attempt owns its stream exclusively and is driven by Resume until it
// reaches a terminal state:
//
//	ephemeral, _ := crypto.GenerateExchangeKeyPair()
//	hs, err := secrethandshake.NewClientHandshake(conn, networkID, identity, *ephemeral, serverKey)
//	if err != nil {
//	    return err
//	}
//	outcome, err := hs.Resume()
//	for errors.Is(err, secrethandshake.ErrWouldBlock) {
//	    // wait for the transport to become ready, then:
//	    outcome, err = hs.Resume()
//	}
//
// With a blocking transport Resume simply runs to completion. Non-blocking
// transports return [ErrWouldBlock] from Read, Write, or Flush to suspend
// the attempt; the next Resume picks up the same partial operation.
//
// On every exit path, including cancellation via Abort, the attempt zeroes
// its message buffer and all derived secrets before releasing them.
package secrethandshake
