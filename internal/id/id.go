// Package id generates opaque random identifiers for request tracing.
package id

import "crypto/rand"

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RequestIDLength is the size of IDs returned by NewRequestID.
const RequestIDLength = 16

// NewRequestID returns a random lowercase alphanumeric request ID.
func NewRequestID() string {
	return Random(RequestIDLength)
}

// Random returns n characters drawn from [a-z0-9].
func Random(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = alphabet[b[i]%byte(len(alphabet))]
	}
	return string(b)
}
