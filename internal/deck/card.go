package deck

// Card is a single vocabulary flashcard.
type Card struct {
	ID       string   `json:"card_id"`
	Hanzi    string   `json:"hanzi"`
	Pinyin   string   `json:"pinyin"`
	Def      string   `json:"def"`
	Tones    string   `json:"tones"`
	DefWords []string `json:"def_words,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	HSK      string   `json:"hsk,omitempty"`
	Audio    string   `json:"audio,omitempty"`

	// PinyinNormalized is Pinyin without tone marks, filled in on load.
	PinyinNormalized string `json:"-"`
}

// ItemID returns the stable card identifier.
func (c Card) ItemID() string {
	return c.ID
}

// Deck is a loaded, validated deck.
type Deck struct {
	ID    string
	Name  string
	Cards []Card

	// Invalid lists cards that were dropped during validation.
	Invalid ValidationErrors
}

// CardIDs returns the ids of all valid cards in deck order.
func (d *Deck) CardIDs() []string {
	ids := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		ids[i] = c.ID
	}
	return ids
}

// Card returns the card with the given id.
func (d *Deck) Card(id string) (Card, bool) {
	for _, c := range d.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// AvailableTags returns the sorted set of tags used by the deck.
func (d *Deck) AvailableTags() []string {
	seen := make(map[string]struct{})
	for _, c := range d.Cards {
		for _, t := range c.Tags {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// AvailableHSK returns the sorted set of HSK levels used by the deck.
func (d *Deck) AvailableHSK() []string {
	seen := make(map[string]struct{})
	for _, c := range d.Cards {
		if c.HSK != "" {
			seen[c.HSK] = struct{}{}
		}
	}
	return sortedKeys(seen)
}
