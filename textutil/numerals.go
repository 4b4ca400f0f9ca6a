package textutil

import (
	"strings"
	"unicode"
)

// romanSuffixes is scanned in order; the first matching suffix wins. Unicode
// glyphs come first so "Ⅷ" is never read as a run of ASCII letters.
var romanSuffixes = []struct {
	roman  string
	arabic string
}{
	{"Ⅰ", "1"}, {"Ⅱ", "2"}, {"Ⅲ", "3"}, {"Ⅳ", "4"}, {"Ⅴ", "5"},
	{"Ⅵ", "6"}, {"Ⅶ", "7"}, {"Ⅷ", "8"}, {"Ⅸ", "9"}, {"Ⅹ", "10"},
	{"I", "1"}, {"II", "2"}, {"III", "3"}, {"IV", "4"}, {"V", "5"},
	{"VI", "6"}, {"VII", "7"}, {"VIII", "8"}, {"IX", "9"}, {"X", "10"},
}

// CanonicalizeTrailingNumeral rewrites a trailing Roman numeral (building
// names like "래미안Ⅱ" or "타워III") to its Arabic form. Text without a
// matching suffix is returned unchanged.
func CanonicalizeTrailingNumeral(s string) string {
	for _, m := range romanSuffixes {
		if strings.HasSuffix(s, m.roman) {
			return s[:len(s)-len(m.roman)] + m.arabic
		}
	}
	return s
}

// StripTrailingDigits removes ASCII digits from the end of s. A building name
// carrying a unit or block number ("신안메트로칸7") becomes a search-safe base
// name. All-digit input yields the empty string; callers must guard for it.
func StripTrailingDigits(s string) string {
	end := len(s)
	for end > 0 && s[end-1] >= '0' && s[end-1] <= '9' {
		end--
	}
	return s[:end]
}

// StripNonKoreanAlnum keeps Korean syllables, Latin letters, digits and
// whitespace, dropping everything else (brackets, middots, unit markers).
func StripNonKoreanAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '가' && r <= '힣':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
