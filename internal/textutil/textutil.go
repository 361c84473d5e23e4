package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode"
)

// ContainsJapanese checks if a string contains Japanese characters
// (kana or kanji). Dialogue lines that fail this check are usually
// engine markup rather than translatable text.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// Hash computes a SHA-256 hex hash of a string, used as the translation
// memory key.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
