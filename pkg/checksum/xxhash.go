package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// GetFileChecksum hashes a file's full content, for idempotency checks on
// re-downloaded archives.
func GetFileChecksum(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to copy file content to hasher for file %s: %w", filePath, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// CalculateHash fingerprints one record for duplicate removal. Fields are
// joined with an unlikely separator so ("a;b","c") and ("a","b;c") do not
// collide the way a plain semicolon join would.
func CalculateHash(record []string) string {
	digest := xxhash.New()
	digest.WriteString(strings.Join(record, "\x1f"))

	return hex.EncodeToString(digest.Sum(nil))
}
