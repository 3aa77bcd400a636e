package pkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID - generates a unique identifier for rooms and users.
func NewID() string {
	return uuid.NewString()
}

// NewJoinCode - generates a short human-shareable room code. Uniqueness is
// the caller's concern; the directory retries on collision.
func NewJoinCode(length int) string {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(joinCodeAlphabet))))
		if err != nil {
			panic(err) // crypto/rand only fails when the OS entropy source is broken
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}

	return string(code)
}
