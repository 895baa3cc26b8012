package model

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/unidecode"
)

const (
	// maxFileNameBytes caps a sanitized stem, leaving room for the extension.
	maxFileNameBytes = 200

	fallbackStem = "untitled"
)

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFileName turns free text into a file name stem that is valid on
// every common filesystem.
//
// The following transformations are applied:
//   - Non-ASCII text is transliterated when ascii is true ("Beyoncé" → "Beyonce")
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Multiple whitespace → single space, leading/trailing spaces removed
//   - Trailing dots → removed (Windows limitation)
//   - Length capped at 200 bytes on a rune boundary
//   - An empty result becomes "untitled"
//
// Example:
//
//	SanitizeFileName("AC/DC: Live?", false) // Returns "AC_DC_ Live_"
func SanitizeFileName(name string, ascii bool) string {
	if ascii {
		name = unidecode.Unidecode(name)
	}

	name = invalidChars.ReplaceAllString(name, "_")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = trailingDots.ReplaceAllString(name, "")

	if len(name) > maxFileNameBytes {
		cut := maxFileNameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.TrimRight(name[:cut], " .")
	}

	if name == "" {
		return fallbackStem
	}
	return name
}
