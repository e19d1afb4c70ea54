package fs

import (
	"crypto/md5" //nolint:gosec // Content digest for change detection, not a security boundary
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing functionality for targets and files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile computes the hex encoded MD5 digest of a file's content.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := md5.New() //nolint:gosec // See import
	if _, err := io.Copy(digest, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// fingerprinter is implemented by actions whose configuration is part of the target declaration.
type fingerprinter interface {
	Fingerprint() string
}

// Fingerprint computes a single hash representing the target declaration.
func (h *Hasher) Fingerprint(target *domain.Target) string {
	hasher := xxhash.New()

	// Name
	_, _ = hasher.WriteString(target.Name)
	_, _ = hasher.Write([]byte{0}) // Separator

	// Inputs
	for _, input := range target.Inputs {
		_, _ = hasher.WriteString(input.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	// Outputs
	for _, output := range target.Outputs {
		_, _ = hasher.WriteString(output.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	// Dependencies
	for _, dep := range target.Dependencies {
		_, _ = hasher.WriteString(dep.Name)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	// Modes
	for _, mode := range target.Modes {
		_, _ = hasher.WriteString(string(mode))
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	if f, ok := target.Action.(fingerprinter); ok {
		_, _ = hasher.WriteString(f.Fingerprint())
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
