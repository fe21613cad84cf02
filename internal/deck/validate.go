package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Validation error kinds.
const (
	KindStructure    = "structure"
	KindSchema       = "schema"
	KindDuplicateID  = "duplicate_id"
	KindInvalidTone  = "invalid_tone"
	KindTokenCount   = "token_count_mismatch"
	KindToneCount    = "tone_count_mismatch"
	KindDefWordCount = "def_words_mismatch"
)

// ValidationError describes one rejected card, or a deck that could not
// be read at all when Kind is KindStructure.
type ValidationError struct {
	Kind      string
	CardIndex int
	CardID    string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Kind == KindStructure {
		return "invalid deck: " + e.Message
	}
	id := e.CardID
	if id == "" {
		id = "?"
	}
	return fmt.Sprintf("card %d (%s): %s: %s", e.CardIndex, id, e.Kind, e.Message)
}

// ValidationErrors is the list of cards dropped from a deck.
type ValidationErrors []*ValidationError

const maxListedErrors = 5

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no validation errors"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid card(s)", len(v))
	for i, e := range v {
		if i == maxListedErrors {
			fmt.Fprintf(&b, "; and %d more", len(v)-maxListedErrors)
			break
		}
		b.WriteString("; ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// validateCard checks a decoded card value against the schema and then
// the cross-field integrity rules. seen tracks ids across the deck.
func validateCard(index int, raw json.RawMessage, seen map[string]struct{}) (Card, *ValidationError) {
	sch, err := compiledCardSchema()
	if err != nil {
		return Card{}, &ValidationError{Kind: KindStructure, CardIndex: index, Message: err.Error()}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Card{}, &ValidationError{Kind: KindSchema, CardIndex: index, Message: err.Error()}
	}
	if err := sch.Validate(doc); err != nil {
		return Card{}, &ValidationError{
			Kind:      KindSchema,
			CardIndex: index,
			CardID:    stringField(doc, "card_id"),
			Message:   schemaMessage(err),
		}
	}

	var c Card
	if err := json.Unmarshal(raw, &c); err != nil {
		return Card{}, &ValidationError{Kind: KindSchema, CardIndex: index, Message: err.Error()}
	}

	fail := func(kind, format string, args ...any) (Card, *ValidationError) {
		return Card{}, &ValidationError{
			Kind:      kind,
			CardIndex: index,
			CardID:    c.ID,
			Message:   fmt.Sprintf(format, args...),
		}
	}

	if _, dup := seen[c.ID]; dup {
		return fail(KindDuplicateID, "card_id %q already used", c.ID)
	}

	toneGroups := strings.Fields(c.Tones)
	toneDigits := strings.Join(toneGroups, "")
	for _, r := range toneDigits {
		if r < '1' || r > '5' {
			return fail(KindInvalidTone, "tone %q is not in 1-5", r)
		}
	}

	hanzi := strings.Fields(c.Hanzi)
	pinyin := strings.Fields(c.Pinyin)
	if len(hanzi) != len(pinyin) {
		return fail(KindTokenCount, "hanzi has %d syllables, pinyin has %d", len(hanzi), len(pinyin))
	}
	if len(toneDigits) != len(hanzi) {
		return fail(KindToneCount, "tones has %d digits, hanzi has %d syllables", len(toneDigits), len(hanzi))
	}
	if len(c.DefWords) > 0 && len(toneGroups) != len(c.DefWords) {
		return fail(KindDefWordCount, "tones has %d words, def_words has %d", len(toneGroups), len(c.DefWords))
	}

	seen[c.ID] = struct{}{}
	c.PinyinNormalized = NormalizePinyin(c.Pinyin)
	return c, nil
}

func stringField(doc any, key string) string {
	m, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// schemaMessage flattens a jsonschema error to its leaf causes.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	p := message.NewPrinter(language.English)
	var msgs []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := "/" + strings.Join(e.InstanceLocation, "/")
			msgs = append(msgs, fmt.Sprintf("%s: %s", loc, e.ErrorKind.LocalizedString(p)))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(msgs, "; ")
}
