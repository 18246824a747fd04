package card

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// deckSchema validates external deck files before they are merged into
// the active deck. A card that fails validation is a configuration error,
// not something to paper over at question time.
var deckSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "lang", "type", "prompt", "answer"},
		"properties": map[string]any{
			"id":     map[string]any{"type": "string", "minLength": 1},
			"lang":   map[string]any{"type": "string", "minLength": 2},
			"type":   map[string]any{"enum": []any{"sentence", "vocab", "grammar"}},
			"source": map[string]any{"type": "string"},
			"prompt": map[string]any{"type": "string", "minLength": 1},
			"answer": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string", "minLength": 1},
					map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
			"translation": map[string]any{"type": "string"},
			"metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"difficulty":        map[string]any{"type": "number"},
					"tags":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"authorAttribution": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	compileDeckSchema sync.Once
	compiledDeck      *jsonschema.Schema
	compileErr        error
)

func deckSchemaCompiled() (*jsonschema.Schema, error) {
	compileDeckSchema.Do(func() {
		defBytes, err := json.Marshal(deckSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal deck schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://deck.json", def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledDeck, compileErr = c.Compile("schema://deck.json")
	})
	return compiledDeck, compileErr
}

// Parse validates raw deck JSON and decodes it into cards. Cards with no
// source are attributed to SourceFile.
func Parse(data []byte) ([]Card, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid deck JSON: %w", err)
	}

	schema, err := deckSchemaCompiled()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("deck validation failed: %w", err)
	}

	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	for i := range cards {
		if cards[i].Source == "" {
			cards[i].Source = SourceFile
		}
	}
	return cards, nil
}

// LoadFile reads and validates a deck file.
func LoadFile(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	cards, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}
