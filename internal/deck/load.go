package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FetchTimeout bounds remote deck downloads.
const FetchTimeout = 10 * time.Second

// ErrUnknownDeck is returned when a deck id is not configured.
var ErrUnknownDeck = errors.New("unknown deck")

// Source is a configured deck location, either a file path or an
// http(s) URL.
type Source struct {
	ID       string `mapstructure:"id" json:"id"`
	Label    string `mapstructure:"label" json:"label"`
	Location string `mapstructure:"location" json:"location"`
	Enabled  *bool  `mapstructure:"enabled" json:"enabled,omitempty"`
}

// IsEnabled defaults to true when Enabled is unset.
func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Resolve finds an enabled source by id.
func Resolve(sources []Source, id string) (Source, error) {
	for _, s := range sources {
		if s.ID == id && s.IsEnabled() {
			return s, nil
		}
	}
	return Source{}, fmt.Errorf("%w: %q", ErrUnknownDeck, id)
}

// LoadSource loads the deck behind s and stamps it with the source id.
func LoadSource(ctx context.Context, s Source) (*Deck, error) {
	d, err := Load(ctx, s.Location)
	if err != nil {
		return nil, err
	}
	d.ID = s.ID
	if d.Name == "" {
		d.Name = s.Label
	}
	return d, nil
}

// Load reads a deck from a file path or an http(s) URL. The deck id
// defaults to the file name without extension.
func Load(ctx context.Context, location string) (*Deck, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		data, err = fetch(ctx, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", location, err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", location, err)
	}
	base := filepath.Base(location)
	d.ID = strings.TrimSuffix(base, filepath.Ext(base))
	if d.Name == "" {
		d.Name = d.ID
	}
	return d, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("request timed out after %s", FetchTimeout)
		}
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

type deckFile struct {
	Name  string            `json:"deck_name"`
	Cards []json.RawMessage `json:"cards"`
}

// Parse decodes a deck document. It accepts either a bare array of cards
// or an object with deck_name and cards. Cards that fail validation are
// dropped and listed in Deck.Invalid; the returned error is reserved for
// documents that are not a deck at all.
func Parse(data []byte) (*Deck, error) {
	var raw []json.RawMessage
	var name string

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, &ValidationError{Kind: KindStructure, Message: "empty document"}
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, &ValidationError{Kind: KindStructure, Message: err.Error()}
		}
	case trimmed[0] == '{':
		var f deckFile
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, &ValidationError{Kind: KindStructure, Message: err.Error()}
		}
		if f.Cards == nil {
			return nil, &ValidationError{Kind: KindStructure, Message: "missing cards array"}
		}
		name, raw = f.Name, f.Cards
	default:
		return nil, &ValidationError{Kind: KindStructure, Message: "deck must be an array of cards"}
	}

	d := &Deck{Name: name, Cards: make([]Card, 0, len(raw))}
	seen := make(map[string]struct{}, len(raw))
	for i, r := range raw {
		c, verr := validateCard(i, r, seen)
		if verr != nil {
			if verr.Kind == KindStructure {
				return nil, verr
			}
			d.Invalid = append(d.Invalid, verr)
			continue
		}
		d.Cards = append(d.Cards, c)
	}
	return d, nil
}
