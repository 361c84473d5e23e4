package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Walker discovers script dump files under a directory for batch runs.
type Walker struct {
	ext string
}

// NewWalker creates a Walker matching files with the given extension
// (e.g. ".ast").
func NewWalker(ext string) *Walker {
	return &Walker{ext: strings.ToLower(ext)}
}

// FileEntry represents a discovered script file ready for processing.
type FileEntry struct {
	// Path is the absolute file path.
	Path string
	// RelPath is the path relative to the walk root, used to mirror the
	// tree into an output directory.
	RelPath string
}

// Walk discovers all matching files under the given root directory.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if strings.ToLower(filepath.Ext(path)) != w.ext {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}

		entries = append(entries, FileEntry{Path: path, RelPath: rel})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered script files")
	return entries, nil
}
