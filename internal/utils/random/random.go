package random

import (
	"crypto/rand"
	"encoding/hex"
)

// ID returns a 32-character hex identifier from a CSPRNG.
func ID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
