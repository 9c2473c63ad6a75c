package crypto

import (
	"crypto/hmac"
	"crypto/sha512"
)

// AuthTagSize is the size of an authenticator tag in bytes.
const AuthTagSize = 32

// AuthTag is a keyed-hash authenticator over a message. The handshake uses
// it to bind hello messages to a network identifier: only holders of the
// identifier can produce or validate a well-formed tag.
type AuthTag [AuthTagSize]byte

// Auth computes an authenticator for the message under the given key,
// using HMAC-SHA-512 truncated to 32 bytes.
func Auth(message []byte, key [32]byte) AuthTag {
	mac := hmac.New(sha512.New, key[:])
	mac.Write(message)

	var tag AuthTag
	copy(tag[:], mac.Sum(nil)[:AuthTagSize])

	return tag
}

// VerifyAuth reports whether tag is a valid authenticator for the message
// under the given key. The comparison runs in constant time.
func VerifyAuth(tag AuthTag, message []byte, key [32]byte) bool {
	expected := Auth(message, key)
	return hmac.Equal(tag[:], expected[:])
}
