// internal/utils/crypto.go
package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the hex sha256 of data; uploads use it to name stored objects.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
