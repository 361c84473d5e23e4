package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"astscript/internal/textutil"

	"github.com/rs/zerolog/log"
)

// TranslationMemory caches translated dialogue lines across runs so
// repeated lines (and re-runs over the same script) skip the API. It is
// an in-memory map with a JSON file snapshot; the tool has no datastore.
type TranslationMemory struct {
	path   string
	mu     sync.RWMutex
	memory map[string]entry // source hash → entry
	dirty  bool
}

type entry struct {
	Source     string `json:"source"`
	Translated string `json:"translated"`
}

// Open loads a translation memory from path. A missing file yields an
// empty memory, not an error.
func Open(path string) (*TranslationMemory, error) {
	tm := &TranslationMemory{
		path:   path,
		memory: make(map[string]entry),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return tm, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read translation memory: %w", err)
	}

	if err := json.Unmarshal(data, &tm.memory); err != nil {
		return nil, fmt.Errorf("decode translation memory %s: %w", path, err)
	}

	log.Info().Int("count", len(tm.memory)).Str("path", path).Msg("Loaded translation memory")
	return tm, nil
}

// Get retrieves a cached translation. Returns empty string and false if
// not found.
func (tm *TranslationMemory) Get(source string) (string, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	e, ok := tm.memory[textutil.Hash(source)]
	if !ok {
		return "", false
	}
	return e.Translated, true
}

// Set stores a translation.
func (tm *TranslationMemory) Set(source, translated string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.memory[textutil.Hash(source)] = entry{Source: source, Translated: translated}
	tm.dirty = true
}

// Len returns the number of cached translations.
func (tm *TranslationMemory) Len() int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return len(tm.memory)
}

// Flush writes the memory back to its file if anything changed since
// the last flush.
func (tm *TranslationMemory) Flush() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if !tm.dirty {
		return nil
	}

	data, err := json.MarshalIndent(tm.memory, "", "  ")
	if err != nil {
		return fmt.Errorf("encode translation memory: %w", err)
	}
	if err := os.WriteFile(tm.path, data, 0644); err != nil {
		return fmt.Errorf("write translation memory: %w", err)
	}

	tm.dirty = false
	log.Info().Int("count", len(tm.memory)).Str("path", tm.path).Msg("Flushed translation memory")
	return nil
}
