package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateGameID creates a human-readable game ID.
// Format: {slugified-name}-{8charHexUUID}
//
// Example:
//   - Input: name="Sector 7 Cup"
//   - Output: "sector-7-cup-a3f8e2b1"
func GenerateGameID(name string) string {
	slug := slugify(name)
	if slug == "" {
		slug = "game"
	}
	return slug + "-" + generateShortUUID()
}

// slugify lowercases a name and collapses any run of non-alphanumerics into one hyphen.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
