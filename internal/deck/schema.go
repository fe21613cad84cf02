package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const cardSchemaURL = "schema://vocabz/card.json"

// cardSchema is the JSON schema every card must satisfy before the
// integrity checks run.
var cardSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"card_id":   map[string]any{"type": "string", "minLength": 1},
		"hanzi":     map[string]any{"type": "string", "minLength": 1},
		"pinyin":    map[string]any{"type": "string", "minLength": 1},
		"def":       map[string]any{"type": "string", "minLength": 1},
		"tones":     map[string]any{"type": "string", "minLength": 1},
		"def_words": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"tags":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"hsk":       map[string]any{"type": "string"},
		"audio":     map[string]any{"type": "string"},
	},
	"required": []any{"card_id", "hanzi", "pinyin", "def", "tones"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledCardSchema compiles cardSchema once.
func compiledCardSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the Go map.
		raw, err := json.Marshal(cardSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal card schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse card schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(cardSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(cardSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiled, compileErr
}
