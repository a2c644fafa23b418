package naming

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and drops the combining marks, turning "é" into
// "e" and "ü" into "u".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a display name into a filesystem-safe slug, matching
// python-slugify's defaults:
//
//  1. ASCII apostrophes become separators ("Heschl's" -> "heschl-s").
//  2. Text is transliterated to ASCII with unidecode and lowercased.
//  3. Quotes produced by transliteration ("’" -> "'") are dropped.
//  4. A comma between two digits is dropped ("1,000" -> "1000").
//  5. Every run of characters outside [a-z0-9] becomes one hyphen, and
//     hyphens at both ends are trimmed.
//
//	"Heschl's Gyrus (includes H1 and H2)" -> "heschl-s-gyrus-includes-h1-and-h2"
func Slugify(text string) string {
	text = strings.ReplaceAll(text, "'", "-")
	text = strings.ToLower(toASCII(text))
	text = strings.ReplaceAll(text, "'", "")
	text = dropDigitCommas(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingSep := false
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// toASCII strips combining marks and transliterates the rest with unidecode.
func toASCII(text string) string {
	decomposed, _, err := transform.String(stripMarks, text)
	if err != nil {
		decomposed = text
	}
	return unidecode.Unidecode(decomposed)
}

// dropDigitCommas removes every comma that sits between two ASCII digits.
func dropDigitCommas(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
