package license

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Digest computes the hex SHA-256 of the file at path, streaming the
// contents so arbitrarily large artifacts never have to fit in memory.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read artifact %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
