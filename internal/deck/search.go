package deck

import "strings"

// SearchField selects what Search matches against.
type SearchField int

const (
	// SearchPinyin matches toneless pinyin or hanzi, ignoring spaces.
	SearchPinyin SearchField = iota
	// SearchDef matches the English definition, case-insensitively.
	SearchDef
)

// Search returns the cards matching query, in deck order. An empty query
// matches every card.
func Search(cards []Card, query string, field SearchField) []Card {
	query = strings.TrimSpace(query)
	if query == "" {
		return cards
	}

	var match func(Card) bool
	switch field {
	case SearchDef:
		q := strings.ToLower(query)
		match = func(c Card) bool { return strings.Contains(strings.ToLower(c.Def), q) }
	default:
		q := squashSpaces(NormalizePinyin(query))
		match = func(c Card) bool {
			pinyin := c.PinyinNormalized
			if pinyin == "" {
				pinyin = NormalizePinyin(c.Pinyin)
			}
			return strings.Contains(squashSpaces(pinyin), q) ||
				strings.Contains(squashSpaces(c.Hanzi), q)
		}
	}

	var out []Card
	for _, c := range cards {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

func squashSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
