// Package checksum fingerprints written configuration files.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Reader reads a file by relative path.
type Reader interface {
	Read(path string) ([]byte, error)
}

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// File returns the digest of the file at path in r.
func File(r Reader, path string) (string, error) {
	data, err := r.Read(path)
	if err != nil {
		return "", err
	}
	return Sum(data), nil
}
