package crypto

import (
	"crypto/sha512"
	"errors"

	"filippo.io/edwards25519"
)

// PublicKeyToCurve25519 converts an Ed25519 public key to its birationally
// equivalent Curve25519 public key, so that a long-term signing identity
// can participate in Diffie-Hellman key agreement.
func PublicKeyToCurve25519(publicKey [32]byte) ([32]byte, error) {
	point, err := new(edwards25519.Point).SetBytes(publicKey[:])
	if err != nil {
		return [32]byte{}, errors.New("invalid ed25519 public key")
	}

	var curveKey [32]byte
	copy(curveKey[:], point.BytesMontgomery())

	return curveKey, nil
}

// SecretKeyToCurve25519 converts a seed-form Ed25519 secret key to the
// corresponding Curve25519 scalar. X25519 clamps the scalar at use, so no
// clamping is applied here.
func SecretKeyToCurve25519(seed [32]byte) [32]byte {
	digest := sha512.Sum512(seed[:])

	var curveKey [32]byte
	copy(curveKey[:], digest[:32])

	// The digest holds scalar material derived from the seed
	ZeroBytes(digest[:])

	return curveKey
}
