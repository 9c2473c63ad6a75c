package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateSigningKeyPair(t *testing.T) {
	keyPair, err := GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("GenerateSigningKeyPair() error: %v", err)
	}

	if keyPair == nil {
		t.Fatal("GenerateSigningKeyPair() returned nil key pair")
	}

	// Check that keys are not zero
	if isZeroKey(keyPair.Public) {
		t.Error("GenerateSigningKeyPair() returned zero public key")
	}

	if isZeroKey(keyPair.Private) {
		t.Error("GenerateSigningKeyPair() returned zero private key")
	}

	// Test that multiple key generations produce different keys
	keyPair2, _ := GenerateSigningKeyPair()
	if bytes.Equal(keyPair.Public[:], keyPair2.Public[:]) {
		t.Error("Multiple GenerateSigningKeyPair() calls produced identical public keys")
	}

	// The seed must reproduce the same public key
	rebuilt, err := SigningKeyPairFromSeed(keyPair.Private)
	if err != nil {
		t.Fatalf("SigningKeyPairFromSeed() error: %v", err)
	}
	if !bytes.Equal(rebuilt.Public[:], keyPair.Public[:]) {
		t.Error("SigningKeyPairFromSeed() did not reproduce the generated public key")
	}
}

func TestSigningKeyPairFromSeed(t *testing.T) {
	cases := []struct {
		name      string
		seed      [32]byte
		wantError bool
	}{
		{
			name:      "Valid seed",
			seed:      [32]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32},
			wantError: false,
		},
		{
			name:      "Zero seed",
			seed:      [32]byte{},
			wantError: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keyPair, err := SigningKeyPairFromSeed(tc.seed)

			if tc.wantError && err == nil {
				t.Fatal("SigningKeyPairFromSeed() expected error but got nil")
			}

			if !tc.wantError {
				if err != nil {
					t.Fatalf("SigningKeyPairFromSeed() unexpected error: %v", err)
				}

				if isZeroKey(keyPair.Public) {
					t.Error("SigningKeyPairFromSeed() returned zero public key")
				}

				if !bytes.Equal(keyPair.Private[:], tc.seed[:]) {
					t.Error("SigningKeyPairFromSeed() modified the seed")
				}
			}
		})
	}
}

func TestGenerateExchangeKeyPair(t *testing.T) {
	keyPair, err := GenerateExchangeKeyPair()
	if err != nil {
		t.Fatalf("GenerateExchangeKeyPair() error: %v", err)
	}

	if isZeroKey(keyPair.Public) || isZeroKey(keyPair.Private) {
		t.Error("GenerateExchangeKeyPair() returned a zero key")
	}

	keyPair2, _ := GenerateExchangeKeyPair()
	if bytes.Equal(keyPair.Public[:], keyPair2.Public[:]) {
		t.Error("Multiple GenerateExchangeKeyPair() calls produced identical public keys")
	}
}

func TestSignVerify(t *testing.T) {
	keyPair, err := GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate signing key pair: %v", err)
	}

	message := []byte("handshake identity proof")

	signature, err := Sign(message, keyPair.Private)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	valid, err := Verify(message, signature, keyPair.Public)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if !valid {
		t.Error("Verify() rejected a valid signature")
	}

	// Tampered message must fail
	tampered := append([]byte(nil), message...)
	tampered[0] ^= 0x01
	valid, err = Verify(tampered, signature, keyPair.Public)
	if err != nil {
		t.Fatalf("Verify() error on tampered message: %v", err)
	}
	if valid {
		t.Error("Verify() accepted a signature over a tampered message")
	}

	// Wrong key must fail
	otherPair, _ := GenerateSigningKeyPair()
	valid, err = Verify(message, signature, otherPair.Public)
	if err != nil {
		t.Fatalf("Verify() error with wrong key: %v", err)
	}
	if valid {
		t.Error("Verify() accepted a signature under the wrong public key")
	}

	// Empty message is rejected
	if _, err := Sign(nil, keyPair.Private); err == nil {
		t.Error("Sign() accepted an empty message")
	}
	if _, err := Verify(nil, signature, keyPair.Public); err == nil {
		t.Error("Verify() accepted an empty message")
	}
}

func TestAuthVerifyAuth(t *testing.T) {
	var key [32]byte
	copy(key[:], []byte("network identifier for the tests"))

	message := []byte("ephemeral public key bytes here!")
	tag := Auth(message, key)

	if !VerifyAuth(tag, message, key) {
		t.Error("VerifyAuth() rejected a valid tag")
	}

	// Different key must not validate
	var otherKey [32]byte
	otherKey[0] = 0xFF
	if VerifyAuth(tag, message, otherKey) {
		t.Error("VerifyAuth() accepted a tag under the wrong key")
	}

	// Tampered message must not validate
	tampered := append([]byte(nil), message...)
	tampered[5] ^= 0x80
	if VerifyAuth(tag, tampered, key) {
		t.Error("VerifyAuth() accepted a tag over a tampered message")
	}

	// Tampered tag must not validate
	badTag := tag
	badTag[0] ^= 0x01
	if VerifyAuth(badTag, message, key) {
		t.Error("VerifyAuth() accepted a tampered tag")
	}
}

func TestSealOpenSecretBox(t *testing.T) {
	var key [32]byte
	key[3] = 0x42
	var nonce Nonce

	message := []byte("identity proof to be sealed")

	sealed, err := SealSecretBox(nil, message, nonce, key)
	if err != nil {
		t.Fatalf("SealSecretBox() error: %v", err)
	}
	if len(sealed) != len(message)+BoxOverhead {
		t.Errorf("SealSecretBox() produced %d bytes, want %d", len(sealed), len(message)+BoxOverhead)
	}

	opened, err := OpenSecretBox(nil, sealed, nonce, key)
	if err != nil {
		t.Fatalf("OpenSecretBox() error: %v", err)
	}
	if !bytes.Equal(opened, message) {
		t.Error("OpenSecretBox() did not recover the original message")
	}

	// Any tampering must fail closed
	for _, i := range []int{0, len(sealed) / 2, len(sealed) - 1} {
		tampered := append([]byte(nil), sealed...)
		tampered[i] ^= 0x01
		if _, err := OpenSecretBox(nil, tampered, nonce, key); err == nil {
			t.Errorf("OpenSecretBox() accepted ciphertext tampered at byte %d", i)
		}
	}

	// Wrong key must fail
	var wrongKey [32]byte
	wrongKey[3] = 0x43
	if _, err := OpenSecretBox(nil, sealed, nonce, wrongKey); err == nil {
		t.Error("OpenSecretBox() accepted ciphertext under the wrong key")
	}

	// Empty inputs are rejected
	if _, err := SealSecretBox(nil, nil, nonce, key); err == nil {
		t.Error("SealSecretBox() accepted an empty message")
	}
	if _, err := OpenSecretBox(nil, nil, nonce, key); err == nil {
		t.Error("OpenSecretBox() accepted an empty ciphertext")
	}
}

func TestDeriveSharedSecretSymmetry(t *testing.T) {
	alice, err := GenerateExchangeKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	bob, err := GenerateExchangeKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}

	aliceShared, err := DeriveSharedSecret(bob.Public, alice.Private)
	if err != nil {
		t.Fatalf("DeriveSharedSecret() error: %v", err)
	}
	bobShared, err := DeriveSharedSecret(alice.Public, bob.Private)
	if err != nil {
		t.Fatalf("DeriveSharedSecret() error: %v", err)
	}

	if !bytes.Equal(aliceShared[:], bobShared[:]) {
		t.Error("DeriveSharedSecret() is not symmetric")
	}

	if isZeroKey(aliceShared) {
		t.Error("DeriveSharedSecret() produced a zero secret")
	}
}

func TestKeyConversionAgreement(t *testing.T) {
	// Converted Ed25519 keys must agree under ECDH exactly like native
	// Curve25519 pairs, which is what lets long-term identities take part
	// in key agreement.
	alice, err := GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	bob, err := GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}

	alicePublicCurve, err := PublicKeyToCurve25519(alice.Public)
	if err != nil {
		t.Fatalf("PublicKeyToCurve25519() error: %v", err)
	}
	bobPublicCurve, err := PublicKeyToCurve25519(bob.Public)
	if err != nil {
		t.Fatalf("PublicKeyToCurve25519() error: %v", err)
	}

	alicePrivateCurve := SecretKeyToCurve25519(alice.Private)
	bobPrivateCurve := SecretKeyToCurve25519(bob.Private)

	shared1, err := DeriveSharedSecret(bobPublicCurve, alicePrivateCurve)
	if err != nil {
		t.Fatalf("DeriveSharedSecret() error: %v", err)
	}
	shared2, err := DeriveSharedSecret(alicePublicCurve, bobPrivateCurve)
	if err != nil {
		t.Fatalf("DeriveSharedSecret() error: %v", err)
	}

	if !bytes.Equal(shared1[:], shared2[:]) {
		t.Error("Converted keys do not agree under ECDH")
	}
}

func TestPublicKeyToCurve25519Invalid(t *testing.T) {
	// A non-canonical point encoding must be rejected rather than
	// converted into garbage.
	var invalid [32]byte
	for i := range invalid {
		invalid[i] = 0xFF
	}

	if _, err := PublicKeyToCurve25519(invalid); err == nil {
		t.Error("PublicKeyToCurve25519() accepted an invalid point encoding")
	}
}
