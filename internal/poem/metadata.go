// Package poem locates prompt metadata files and extracts generation prompts
// from them.
//
// Each poem has a sidecar metadata file named <name>.metadata.json carrying
// at least an image_prompt field. The expected output image lives next to the
// metadata file as <name>.png.
package poem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MetadataSuffix identifies prompt metadata files within a poem directory.
const MetadataSuffix = ".metadata.json"

// ImageSuffix is the extension of generated output images.
const ImageSuffix = ".png"

// ErrNoPrompt is returned by Load when the metadata has no image_prompt field.
var ErrNoPrompt = errors.New("metadata has no image_prompt field")

// PromptRecord is one unit of batch work: a named prompt and the output path
// its image should be written to. Immutable once loaded.
type PromptRecord struct {
	Name       string
	Prompt     string
	OutputPath string
}

// numberedDirs lists the fallback poem directories checked when no canonical
// poems directory exists, in priority order.
var numberedDirs = []string{
	"1/poems",
	"2/poems",
	"3/poems",
	"4/poems",
	"5/poems",
	"6/poems",
}

// DiscoverDirs locates the poem source directories under root (the current
// directory when root is empty). A canonical poems directory takes precedence
// over the numbered fallbacks. Returns an empty slice when nothing exists.
func DiscoverDirs(root string) []string {
	if root == "" {
		root = "."
	}

	canonical := filepath.Join(root, "poems")
	if dirExists(canonical) {
		return []string{canonical}
	}

	var dirs []string
	for _, rel := range numberedDirs {
		dir := filepath.Join(root, rel)
		if dirExists(dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Scan returns the metadata files in dir, in whatever order the filesystem
// yields them.
func Scan(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+MetadataSuffix))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return matches, nil
}

// OutputPath derives the expected image path for a metadata file: the
// metadata suffix is stripped and the image extension appended, in the same
// directory.
func OutputPath(metadataPath string) string {
	return strings.TrimSuffix(metadataPath, MetadataSuffix) + ImageSuffix
}

// Load reads and parses a metadata file into a PromptRecord. A present but
// empty image_prompt is accepted; an absent field returns ErrNoPrompt.
func Load(metadataPath string) (*PromptRecord, error) {
	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var meta struct {
		ImagePrompt *string `json:"image_prompt"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", metadataPath, err)
	}
	if meta.ImagePrompt == nil {
		return nil, ErrNoPrompt
	}

	base := strings.TrimSuffix(filepath.Base(metadataPath), MetadataSuffix)
	return &PromptRecord{
		Name:       base,
		Prompt:     *meta.ImagePrompt,
		OutputPath: OutputPath(metadataPath),
	}, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
