package secrethandshake

import (
	"crypto/sha256"

	"github.com/hermitnet/secrethandshake/crypto"
)

// serverState holds the responding party's view of one handshake attempt.
// Unlike the client, the server learns the peer's long-term identity during
// the handshake, from the sealed client auth message. The shared-secret
// naming matches clientState: both roles derive the same three values
// through complementary computations.
type serverState struct {
	networkID [NetworkIdentifierSize]byte
	longterm  crypto.SigningKeyPair
	ephemeral crypto.ExchangeKeyPair

	clientLongterm  [32]byte
	clientEphemeral [32]byte
	ownHelloTag     crypto.AuthTag
	clientHelloTag  crypto.AuthTag

	ephEph     [32]byte
	ephLong    [32]byte
	longEph    [32]byte
	hashEphEph [32]byte

	clientProof [clientProofSize]byte
	finalKey    [32]byte
}

func newServerState(networkIdentifier [NetworkIdentifierSize]byte, longterm crypto.SigningKeyPair, ephemeral crypto.ExchangeKeyPair) *serverState {
	return &serverState{
		networkID: networkIdentifier,
		longterm:  longterm,
		ephemeral: ephemeral,
	}
}

// verifyClientHello checks the client hello's authenticator, records the
// client's ephemeral key, and derives the two secrets available before the
// client's identity is known.
func (s *serverState) verifyClientHello(msg []byte) bool {
	var tag crypto.AuthTag
	copy(tag[:], msg[:crypto.AuthTagSize])

	if !crypto.VerifyAuth(tag, msg[crypto.AuthTagSize:helloSize], s.networkID) {
		return false
	}
	s.clientHelloTag = tag
	copy(s.clientEphemeral[:], msg[crypto.AuthTagSize:helloSize])

	var err error
	s.ephEph, err = crypto.DeriveSharedSecret(s.clientEphemeral, s.ephemeral.Private)
	if err != nil {
		return false
	}
	s.hashEphEph = sha256.Sum256(s.ephEph[:])

	curveSecret := crypto.SecretKeyToCurve25519(s.longterm.Private)
	s.ephLong, err = crypto.DeriveSharedSecret(s.clientEphemeral, curveSecret)
	crypto.ZeroBytes(curveSecret[:])
	return err == nil
}

// createServerHello writes the second message, mirroring the client hello.
func (s *serverState) createServerHello(out []byte) error {
	s.ownHelloTag = crypto.Auth(s.ephemeral.Public[:], s.networkID)
	copy(out[:crypto.AuthTagSize], s.ownHelloTag[:])
	copy(out[crypto.AuthTagSize:helloSize], s.ephemeral.Public[:])
	return nil
}

// verifyClientAuth opens the sealed identity proof, learns and verifies the
// client's long-term identity, and derives the final shared secret.
func (s *serverState) verifyClientAuth(msg []byte) bool {
	key := deriveKey(s.networkID[:], s.ephEph[:], s.ephLong[:])
	plain, err := crypto.OpenSecretBox(nil, msg[:clientAuthSize], zeroNonce, key)
	crypto.ZeroBytes(key[:])
	if err != nil || len(plain) != clientProofSize {
		return false
	}
	copy(s.clientProof[:], plain)

	var sig crypto.Signature
	copy(sig[:], s.clientProof[:crypto.SignatureSize])
	copy(s.clientLongterm[:], s.clientProof[crypto.SignatureSize:])

	signed := make([]byte, 0, NetworkIdentifierSize+32+sha256.Size)
	signed = append(signed, s.networkID[:]...)
	signed = append(signed, s.longterm.Public[:]...)
	signed = append(signed, s.hashEphEph[:]...)

	ok, err := crypto.Verify(signed, sig, s.clientLongterm)
	if err != nil || !ok {
		return false
	}

	clientCurve, err := crypto.PublicKeyToCurve25519(s.clientLongterm)
	if err != nil {
		return false
	}
	s.longEph, err = crypto.DeriveSharedSecret(clientCurve, s.ephemeral.Private)
	return err == nil
}

// createServerAccept writes the fourth message: a signature over the
// client's identity proof, sealed under the final key. Opening it proves to
// the client that the server derived all three shared secrets.
func (s *serverState) createServerAccept(out []byte) error {
	signed := make([]byte, 0, NetworkIdentifierSize+clientProofSize+sha256.Size)
	signed = append(signed, s.networkID[:]...)
	signed = append(signed, s.clientProof[:]...)
	signed = append(signed, s.hashEphEph[:]...)

	sig, err := crypto.Sign(signed, s.longterm.Private)
	if err != nil {
		return err
	}

	s.finalKey = deriveKey(s.networkID[:], s.ephEph[:], s.ephLong[:], s.longEph[:])
	_, err = crypto.SealSecretBox(out[:0], sig[:], zeroNonce, s.finalKey)
	return err
}

func (s *serverState) outcome() *Outcome {
	return newOutcome(s.finalKey, s.longterm.Public, s.clientLongterm, s.clientHelloTag, s.ownHelloTag)
}

// cleanup wipes every secret the attempt accumulated, including the
// attempt-owned copies of the caller's keys.
func (s *serverState) cleanup() {
	crypto.ZeroBytes(s.longterm.Private[:])
	crypto.ZeroBytes(s.ephemeral.Private[:])
	crypto.ZeroBytes(s.ephEph[:])
	crypto.ZeroBytes(s.ephLong[:])
	crypto.ZeroBytes(s.longEph[:])
	crypto.ZeroBytes(s.hashEphEph[:])
	crypto.ZeroBytes(s.finalKey[:])
}
