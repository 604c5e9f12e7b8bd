// Package checksum records which prompt produced each output image.
//
// For every output file the store keeps a sidecar record named
// <output-base-name>.md5 holding the hex digest of the prompt text. The
// records are an auditable trail of "last prompt that produced this file";
// the batch driver's skip decision does not consult them (it uses output
// existence only), but HasProcessed is exposed so a digest-based skip policy
// would be a one-line change in the driver.
package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the process-wide sidecar directory.
const DefaultDir = ".image_checksums"

// Store persists prompt fingerprints keyed by output file name.
type Store struct {
	dir string
}

// NewStore creates the sidecar directory if absent and returns a Store
// rooted there. An empty dir selects DefaultDir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create checksum dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the sidecar directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Fingerprint returns the lowercase hex MD5 digest of the prompt's exact
// byte content.
func Fingerprint(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// HasProcessed reports whether this exact prompt was recorded for the given
// output file. A missing sidecar means "not processed" regardless of whether
// the output file itself exists.
func (s *Store) HasProcessed(prompt, outputPath string) bool {
	data, err := os.ReadFile(s.sidecarPath(outputPath))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == Fingerprint(prompt)
}

// MarkProcessed records the prompt's fingerprint for the given output file,
// overwriting any prior record.
func (s *Store) MarkProcessed(prompt, outputPath string) error {
	path := s.sidecarPath(outputPath)
	if err := os.WriteFile(path, []byte(Fingerprint(prompt)), 0644); err != nil {
		return fmt.Errorf("write checksum record: %w", err)
	}
	return nil
}

func (s *Store) sidecarPath(outputPath string) string {
	return filepath.Join(s.dir, filepath.Base(outputPath)+".md5")
}
