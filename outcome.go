package secrethandshake

import "github.com/hermitnet/secrethandshake/crypto"

// Outcome is the result of a successful handshake: two independent
// directional session keys with matching starting nonces, plus the verified
// long-term identity of the peer. The encrypted transport layered on top of
// the handshake consumes it; this package never uses the keys itself.
//
// The two directions never collide: each side's SendKey equals the other
// side's ReceiveKey, derived with the receiving party's identity folded in.
type Outcome struct {
	// SendKey encrypts traffic from this party to the peer.
	SendKey [32]byte
	// SendNonce is the starting nonce for the sending direction.
	SendNonce [24]byte
	// ReceiveKey decrypts traffic from the peer to this party.
	ReceiveKey [32]byte
	// ReceiveNonce is the starting nonce for the receiving direction.
	ReceiveNonce [24]byte
	// PeerPublicKey is the peer's long-term public key, verified during
	// the handshake.
	PeerPublicKey [32]byte
}

// Wipe erases the session keys. The consumer should call it once the keys
// have been handed off to the transport layer.
func (o *Outcome) Wipe() {
	crypto.ZeroBytes(o.SendKey[:])
	crypto.ZeroBytes(o.ReceiveKey[:])
	crypto.ZeroBytes(o.SendNonce[:])
	crypto.ZeroBytes(o.ReceiveNonce[:])
}
