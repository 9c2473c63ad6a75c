package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/nacl/box"
)

// SigningKeyPair represents an Ed25519 key pair identifying a party
// persistently across handshakes. Private holds the 32-byte seed form of
// the secret key.
type SigningKeyPair struct {
	Public  [32]byte
	Private [32]byte
}

// ExchangeKeyPair represents a Curve25519 key pair used for Diffie-Hellman
// key agreement. Exchange pairs are generated fresh for every handshake
// attempt and never reused.
type ExchangeKeyPair struct {
	Public  [32]byte
	Private [32]byte
}

// GenerateSigningKeyPair creates a new random Ed25519 signing key pair.
func GenerateSigningKeyPair() (*SigningKeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	keyPair := &SigningKeyPair{}
	copy(keyPair.Public[:], publicKey)
	copy(keyPair.Private[:], privateKey.Seed())

	return keyPair, nil
}

// SigningKeyPairFromSeed creates a signing key pair from an existing
// 32-byte Ed25519 seed.
func SigningKeyPairFromSeed(seed [32]byte) (*SigningKeyPair, error) {
	// Validate the seed
	if isZeroKey(seed) {
		return nil, errors.New("invalid seed: all zeros")
	}

	privateKey := ed25519.NewKeyFromSeed(seed[:])

	keyPair := &SigningKeyPair{Private: seed}
	copy(keyPair.Public[:], privateKey.Public().(ed25519.PublicKey))

	return keyPair, nil
}

// GenerateExchangeKeyPair creates a new random Curve25519 key pair.
func GenerateExchangeKeyPair() (*ExchangeKeyPair, error) {
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	keyPair := &ExchangeKeyPair{
		Public:  *publicKey,
		Private: *privateKey,
	}

	return keyPair, nil
}

// isZeroKey checks if a key consists of all zeros.
func isZeroKey(key [32]byte) bool {
	for _, b := range key {
		if b != 0 {
			return false
		}
	}
	return true
}
