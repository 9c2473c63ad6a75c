package crypto

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// SecureWipe attempts to securely erase the contents of a byte slice
// containing sensitive data. It returns an error if the byte slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	// Overwrite the data with zeros
	// Using subtle.ConstantTimeCompare's byteXor operation to avoid
	// potential compiler optimizations that might remove the overwrite
	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	// Attempt to prevent the compiler from optimizing out the zeroing
	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)

	return nil
}

// ZeroBytes erases the contents of a byte slice containing sensitive data.
// This is a convenience function that ignores the error from SecureWipe.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// WipeSigningKeyPair securely erases the seed in a SigningKeyPair.
// This should be called when a SigningKeyPair is no longer needed.
func WipeSigningKeyPair(kp *SigningKeyPair) error {
	if kp == nil {
		return errors.New("cannot wipe nil SigningKeyPair")
	}
	return SecureWipe(kp.Private[:])
}

// WipeExchangeKeyPair securely erases the private key in an ExchangeKeyPair.
// This should be called when an ExchangeKeyPair is no longer needed.
func WipeExchangeKeyPair(kp *ExchangeKeyPair) error {
	if kp == nil {
		return errors.New("cannot wipe nil ExchangeKeyPair")
	}
	return SecureWipe(kp.Private[:])
}
