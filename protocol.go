package secrethandshake

import (
	"crypto/sha256"

	"github.com/hermitnet/secrethandshake/crypto"
)

// NetworkIdentifierSize is the size in bytes of the shared secret scoping a
// handshake to one network. The identifier is used as an HMAC key on the
// hello messages and is never transmitted.
const NetworkIdentifierSize = 32

// Wire sizes of the four handshake messages. There is no framing; both ends
// know these as protocol constants.
const (
	helloSize        = crypto.AuthTagSize + 32
	clientProofSize  = crypto.SignatureSize + 32
	clientAuthSize   = clientProofSize + crypto.BoxOverhead
	serverAcceptSize = crypto.SignatureSize + crypto.BoxOverhead
	bufferSize       = clientAuthSize // largest message; the buffer is shared by all four
)

// zeroNonce seals the two authenticated messages. A fixed nonce is sound
// here only because every sealing key is derived from handshake-unique
// secrets and seals exactly one message ever.
var zeroNonce crypto.Nonce

// deriveKey hashes the given byte strings into a 32-byte key. The handshake
// uses it both for the single-use sealing keys (network identifier plus the
// shared secrets known at that step) and for the directional session keys.
func deriveKey(parts ...[]byte) [32]byte {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
	}

	var key [32]byte
	h.Sum(key[:0])
	return key
}

// newOutcome derives the directional session keys from the final shared-key
// material. Each direction folds in the receiving party's long-term identity
// so the two keys are independent even though the underlying secrets are
// shared. The starting nonces come from the hello authenticators: each
// direction starts at the tag produced by the party that will receive it.
func newOutcome(finalKey, ownPublic, peerPublic [32]byte, peerHelloTag, ownHelloTag crypto.AuthTag) *Outcome {
	base := sha256.Sum256(finalKey[:])

	outcome := &Outcome{
		SendKey:       deriveKey(base[:], peerPublic[:]),
		ReceiveKey:    deriveKey(base[:], ownPublic[:]),
		PeerPublicKey: peerPublic,
	}
	copy(outcome.SendNonce[:], peerHelloTag[:])
	copy(outcome.ReceiveNonce[:], ownHelloTag[:])

	crypto.ZeroBytes(base[:])
	return outcome
}
