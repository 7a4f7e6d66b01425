package questionbank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://questions.json"

// documentSchema is the JSON schema for a question source document.
var documentSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type": []any{"string", "integer"},
			},
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items":    map[string]any{"type": "string"},
			},
			"answer": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"topic":   map[string]any{"type": "string"},
			"chapter": map[string]any{"type": "string"},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
		},
		"required": []any{"id", "question", "options", "answer", "topic", "chapter", "difficulty"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles documentSchema on first use.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not a Go map literal.
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks raw JSON against the question document schema.
func validateDocument(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
