package deck

import (
	"slices"
	"sort"
	"strings"
)

// Flags are the per-card user toggles.
type Flags struct {
	Starred bool `json:"starred"`
	Ignored bool `json:"ignored"`
}

// FlagLookup returns the flags for a card id.
type FlagLookup func(cardID string) Flags

// Filter narrows a deck down to the cards a session should draw from.
// Tags and HSK are membership filters applied to the card list; the
// starred and ignored toggles are applied at selection time.
type Filter struct {
	Tags        []string `json:"tags,omitempty"`
	HSK         []string `json:"hsk,omitempty"`
	StarredOnly bool     `json:"starred_only,omitempty"`
	IgnoredOnly bool     `json:"ignored_only,omitempty"`
}

// IsZero reports whether the filter keeps every card.
func (f Filter) IsZero() bool {
	return len(f.Tags) == 0 && len(f.HSK) == 0 && !f.StarredOnly && !f.IgnoredOnly
}

// Match reports whether c passes the tag and HSK filters. A card matches
// the tag filter if it carries any of the selected tags.
func (f Filter) Match(c Card) bool {
	if len(f.Tags) > 0 && !slices.ContainsFunc(c.Tags, func(t string) bool {
		return slices.Contains(f.Tags, t)
	}) {
		return false
	}
	if len(f.HSK) > 0 && !slices.Contains(f.HSK, c.HSK) {
		return false
	}
	return true
}

// Apply returns the cards that pass Match, in deck order.
func (f Filter) Apply(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// Predicate returns the selection-time predicate for the starred and
// ignored toggles. With IgnoredOnly unset, ignored cards are hidden;
// with it set, only ignored cards pass.
func (f Filter) Predicate(flags FlagLookup) func(Card) bool {
	return func(c Card) bool {
		var fl Flags
		if flags != nil {
			fl = flags(c.ID)
		}
		if f.StarredOnly && !fl.Starred {
			return false
		}
		return fl.Ignored == f.IgnoredOnly
	}
}

// Describe renders the filter for the status line.
func (f Filter) Describe() string {
	var parts []string
	if len(f.Tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(f.Tags, ", "))
	}
	if len(f.HSK) > 0 {
		parts = append(parts, "HSK: "+strings.Join(f.HSK, ", "))
	}
	if f.StarredOnly {
		parts = append(parts, "starred only")
	}
	if f.IgnoredOnly {
		parts = append(parts, "ignored only")
	}
	if len(parts) == 0 {
		return "all cards"
	}
	return strings.Join(parts, " · ")
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
