package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/ui/theme"
)

// Syllable is one hanzi token with its pinyin and tone digit.
type Syllable struct {
	Hanzi  string
	Pinyin string
	Tone   byte
}

// Word is one tone group of a card, aligned with its def_words entry.
type Word struct {
	Syllables []Syllable
	Def       string
}

// SplitWords groups a card's syllables into words using the space
// separated tone groups. Missing tokens end the split early.
func SplitWords(c deck.Card) []Word {
	hanzi := strings.Fields(c.Hanzi)
	pinyin := strings.Fields(c.Pinyin)
	var words []Word
	i := 0
	for wi, group := range strings.Fields(c.Tones) {
		var w Word
		if wi < len(c.DefWords) {
			w.Def = c.DefWords[wi]
		}
		for j := 0; j < len(group); j++ {
			if i >= len(hanzi) || i >= len(pinyin) {
				return append(words, w)
			}
			w.Syllables = append(w.Syllables, Syllable{Hanzi: hanzi[i], Pinyin: pinyin[i], Tone: group[j]})
			i++
		}
		words = append(words, w)
	}
	return words
}

// CardTable renders a card as tone-coloured word columns.
type CardTable struct {
	Card         deck.Card
	ShowHanzi    bool
	ShowPinyin   bool
	ShowDefWords bool
}

func toneStyle(tone byte) lipgloss.Style {
	i := int(tone - '1')
	if i < 0 || i >= len(theme.Tones) {
		i = len(theme.Tones) - 1
	}
	return lipgloss.NewStyle().Foreground(theme.Tones[i])
}

// View renders the table.
func (t CardTable) View() string {
	var cols []string
	for _, w := range SplitWords(t.Card) {
		var rows []string
		if t.ShowHanzi {
			var b strings.Builder
			for _, s := range w.Syllables {
				b.WriteString(toneStyle(s.Tone).Bold(true).Render(s.Hanzi))
			}
			rows = append(rows, b.String())
		}
		if t.ShowPinyin {
			parts := make([]string, len(w.Syllables))
			for i, s := range w.Syllables {
				parts[i] = toneStyle(s.Tone).Render(s.Pinyin)
			}
			rows = append(rows, strings.Join(parts, ""))
		}
		if t.ShowDefWords && w.Def != "" {
			rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Render(w.Def))
		}
		col := lipgloss.JoinVertical(lipgloss.Center, rows...)
		cols = append(cols, lipgloss.NewStyle().Padding(0, 2).Render(col))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
