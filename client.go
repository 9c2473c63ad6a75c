package secrethandshake

import (
	"crypto/sha256"

	"github.com/hermitnet/secrethandshake/crypto"
)

// clientState holds the initiating party's view of one handshake attempt:
// its own keys, the server's long-term identity, and the shared secrets
// accumulated as the four messages are exchanged. All methods are I/O-free;
// the state machine in handshake.go drives them in protocol order.
//
// The three shared secrets are named by which keys meet in them:
// ephEph is ephemeral-ephemeral, ephLong is the client ephemeral with the
// server long-term key, longEph is the client long-term with the server
// ephemeral key. Both roles derive the same three values, which is what
// makes the sealed identity proofs mutually openable.
type clientState struct {
	networkID      [NetworkIdentifierSize]byte
	longterm       crypto.SigningKeyPair
	ephemeral      crypto.ExchangeKeyPair
	serverLongterm [32]byte

	serverEphemeral [32]byte
	ownHelloTag     crypto.AuthTag
	serverHelloTag  crypto.AuthTag

	ephEph     [32]byte
	ephLong    [32]byte
	longEph    [32]byte
	hashEphEph [32]byte

	// clientProof is the plaintext of the client auth message (detached
	// signature followed by the client's long-term public key). The server
	// signs it back in the acceptance, so it is kept for verification.
	clientProof [clientProofSize]byte

	// finalKey seals the acceptance message and seeds the session keys.
	finalKey [32]byte
}

func newClientState(networkIdentifier [NetworkIdentifierSize]byte, longterm crypto.SigningKeyPair, ephemeral crypto.ExchangeKeyPair, serverPublicKey [32]byte) *clientState {
	return &clientState{
		networkID:      networkIdentifier,
		longterm:       longterm,
		ephemeral:      ephemeral,
		serverLongterm: serverPublicKey,
	}
}

// createClientHello writes the first message: an authenticator of the
// client's ephemeral public key under the network identifier, followed by
// that ephemeral key. Parties outside the network cannot produce or
// validate the tag.
func (c *clientState) createClientHello(out []byte) error {
	c.ownHelloTag = crypto.Auth(c.ephemeral.Public[:], c.networkID)
	copy(out[:crypto.AuthTagSize], c.ownHelloTag[:])
	copy(out[crypto.AuthTagSize:helloSize], c.ephemeral.Public[:])
	return nil
}

// verifyServerHello checks the server hello's authenticator, records the
// server's ephemeral key, and derives the first two shared secrets.
func (c *clientState) verifyServerHello(msg []byte) bool {
	var tag crypto.AuthTag
	copy(tag[:], msg[:crypto.AuthTagSize])

	if !crypto.VerifyAuth(tag, msg[crypto.AuthTagSize:helloSize], c.networkID) {
		return false
	}
	c.serverHelloTag = tag
	copy(c.serverEphemeral[:], msg[crypto.AuthTagSize:helloSize])

	var err error
	c.ephEph, err = crypto.DeriveSharedSecret(c.serverEphemeral, c.ephemeral.Private)
	if err != nil {
		return false
	}
	c.hashEphEph = sha256.Sum256(c.ephEph[:])

	serverCurve, err := crypto.PublicKeyToCurve25519(c.serverLongterm)
	if err != nil {
		return false
	}
	c.ephLong, err = crypto.DeriveSharedSecret(serverCurve, c.ephemeral.Private)
	return err == nil
}

// createClientAuth writes the third message: the client's identity proof,
// sealed under a key that only a party holding the server's keys can
// derive. It also derives the long-term/ephemeral secret needed to open the
// server's acceptance.
func (c *clientState) createClientAuth(out []byte) error {
	signed := make([]byte, 0, NetworkIdentifierSize+32+sha256.Size)
	signed = append(signed, c.networkID[:]...)
	signed = append(signed, c.serverLongterm[:]...)
	signed = append(signed, c.hashEphEph[:]...)

	sig, err := crypto.Sign(signed, c.longterm.Private)
	if err != nil {
		return err
	}
	copy(c.clientProof[:crypto.SignatureSize], sig[:])
	copy(c.clientProof[crypto.SignatureSize:], c.longterm.Public[:])

	key := deriveKey(c.networkID[:], c.ephEph[:], c.ephLong[:])
	_, err = crypto.SealSecretBox(out[:0], c.clientProof[:], zeroNonce, key)
	crypto.ZeroBytes(key[:])
	if err != nil {
		return err
	}

	curveSecret := crypto.SecretKeyToCurve25519(c.longterm.Private)
	c.longEph, err = crypto.DeriveSharedSecret(c.serverEphemeral, curveSecret)
	crypto.ZeroBytes(curveSecret[:])
	return err
}

// verifyServerAccept opens the fourth message and checks the server's
// signature over the client's identity proof.
func (c *clientState) verifyServerAccept(msg []byte) bool {
	c.finalKey = deriveKey(c.networkID[:], c.ephEph[:], c.ephLong[:], c.longEph[:])

	plain, err := crypto.OpenSecretBox(nil, msg[:serverAcceptSize], zeroNonce, c.finalKey)
	if err != nil {
		return false
	}

	var sig crypto.Signature
	copy(sig[:], plain)

	signed := make([]byte, 0, NetworkIdentifierSize+clientProofSize+sha256.Size)
	signed = append(signed, c.networkID[:]...)
	signed = append(signed, c.clientProof[:]...)
	signed = append(signed, c.hashEphEph[:]...)

	ok, err := crypto.Verify(signed, sig, c.serverLongterm)
	return err == nil && ok
}

func (c *clientState) outcome() *Outcome {
	return newOutcome(c.finalKey, c.longterm.Public, c.serverLongterm, c.serverHelloTag, c.ownHelloTag)
}

// cleanup wipes every secret the attempt accumulated, including the
// attempt-owned copies of the caller's keys.
func (c *clientState) cleanup() {
	crypto.ZeroBytes(c.longterm.Private[:])
	crypto.ZeroBytes(c.ephemeral.Private[:])
	crypto.ZeroBytes(c.ephEph[:])
	crypto.ZeroBytes(c.ephLong[:])
	crypto.ZeroBytes(c.longEph[:])
	crypto.ZeroBytes(c.hashEphEph[:])
	crypto.ZeroBytes(c.finalKey[:])
}
