package deck

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizePinyin lowercases s and strips tone marks so "Nǐ hǎo" and
// "ni hao" compare equal. ü becomes u.
func NormalizePinyin(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))
	return strings.Map(func(r rune) rune {
		if r >= 0x0300 && r <= 0x036f {
			return -1
		}
		return r
	}, decomposed)
}

// MatchPinyin reports whether answer matches the card pinyin, ignoring
// case, tone marks, tone numbers and spaces, so "ni3 hao3" matches
// "nǐ hǎo".
func MatchPinyin(answer, pinyin string) bool {
	squash := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) || (r >= '0' && r <= '5') {
				return -1
			}
			return r
		}, NormalizePinyin(s))
	}
	a := squash(answer)
	return a != "" && a == squash(pinyin)
}
