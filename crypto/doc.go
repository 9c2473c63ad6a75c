// Package crypto implements the cryptographic primitives used by the
// secret-handshake protocol.
//
// This package provides the NaCl-based foundation for the handshake:
// Ed25519 signatures over seed-form keys, Curve25519 key agreement,
// authenticated symmetric encryption (secretbox), keyed hashing for
// network-identifier binding, Ed25519-to-Curve25519 key conversion, and
// memory-safe handling of secret material.
//
// # Core Types
//
//   - [SigningKeyPair]: Ed25519 long-term identity key pair (seed-form secret)
//   - [ExchangeKeyPair]: Curve25519 ephemeral key-exchange pair
//   - [Signature]: Ed25519 signature
//   - [Nonce]: 24-byte nonce for secretbox operations
//
// # Key Agreement
//
//	shared, err := crypto.DeriveSharedSecret(peerPublicKey, myPrivateKey)
//
// Long-term Ed25519 keys participate in key agreement through their
// birationally equivalent Curve25519 form:
//
//	curvePK, err := crypto.PublicKeyToCurve25519(signingPublicKey)
//	curveSK := crypto.SecretKeyToCurve25519(signingSeed)
//
// # Verification
//
// All verification operations (VerifyAuth, Verify, OpenSecretBox) run in
// constant time with respect to secret data and fail closed: they report
// failure rather than returning partially trusted output.
//
// # Secure Memory
//
// Secret-bearing buffers are erased with [SecureWipe] or [ZeroBytes] when
// no longer needed; key pairs have dedicated wipe helpers.
package crypto
