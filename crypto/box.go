package crypto

import (
	"errors"

	"golang.org/x/crypto/nacl/secretbox"
)

// Nonce is a 24-byte value used for secretbox operations.
type Nonce [24]byte

// BoxOverhead is the number of bytes secretbox adds to a message for its
// authentication tag.
const BoxOverhead = secretbox.Overhead

// SealSecretBox encrypts and authenticates a message using a symmetric key,
// appending the result to out. The caller is responsible for nonce
// discipline: a (key, nonce) pair must never seal more than one message.
func SealSecretBox(out, message []byte, nonce Nonce, key [32]byte) ([]byte, error) {
	if len(message) == 0 {
		return nil, errors.New("empty message")
	}

	return secretbox.Seal(out, message, (*[24]byte)(&nonce), (*[32]byte)(&key)), nil
}

// OpenSecretBox authenticates and decrypts a sealed message, appending the
// plaintext to out. It fails closed on any tampering.
func OpenSecretBox(out, ciphertext []byte, nonce Nonce, key [32]byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, errors.New("empty ciphertext")
	}

	plaintext, ok := secretbox.Open(out, ciphertext, (*[24]byte)(&nonce), (*[32]byte)(&key))
	if !ok {
		return nil, errors.New("decryption failed: message authentication failed")
	}

	return plaintext, nil
}
