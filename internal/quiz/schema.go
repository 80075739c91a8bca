package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// itemSchemaURL is the resource name the item schema is compiled under.
const itemSchemaURL = "schema://quiz-item.json"

// ItemSchema describes a well-formed quiz item as served by the content API.
// Items that fail it are still accepted by NormalizeItems; the schema only
// feeds Lint.
var ItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type": []any{"string", "integer"},
		},
		"type": map[string]any{
			"type": "string",
			"enum": []any{string(TypeMultipleChoice), string(TypeFreeText)},
		},
		"question": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"answer_index": map[string]any{
			"type":    "integer",
			"minimum": 0,
		},
		"answer_text":    map[string]any{"type": "string"},
		"trim":           map[string]any{"type": "boolean"},
		"case_sensitive": map[string]any{"type": "boolean"},
		"placeholder":    map[string]any{"type": "string"},
	},
	"required": []any{"question"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Problem describes one way a quiz item is malformed.
type Problem struct {
	Position int
	ItemID   string
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("item %d (%s): %s", p.Position, p.ItemID, p.Message)
}

// Lint reports malformed items in a decoded quiz payload. It never changes
// what NormalizeItems returns for the same payload.
func Lint(payload any) []Problem {
	var elems []any
	switch p := payload.(type) {
	case []any:
		elems = p
	case map[string]any:
		elems = []any{p}
	default:
		return nil
	}

	items := NormalizeItems(payload)
	sch, err := itemSchema()

	var problems []Problem
	for i, e := range elems {
		id := items[i].ID
		if err == nil {
			if verr := sch.Validate(e); verr != nil {
				problems = append(problems, Problem{
					Position: i,
					ItemID:   id,
					Message:  flatten(verr.Error()),
				})
			}
		}
		for _, msg := range semanticProblems(items[i]) {
			problems = append(problems, Problem{Position: i, ItemID: id, Message: msg})
		}
	}
	return problems
}

// semanticProblems covers what the schema cannot express: an answer that
// can never be matched.
func semanticProblems(it Item) []string {
	var out []string
	switch it.Type {
	case TypeMultipleChoice:
		if len(it.Options) == 0 {
			out = append(out, "multiple-choice item has no options")
		}
		if it.AnswerIndex < 0 || it.AnswerIndex >= len(it.Options) {
			out = append(out, fmt.Sprintf("answer_index %d out of range for %d options", it.AnswerIndex, len(it.Options)))
		}
	case TypeFreeText:
		if NormalizeText(it.AnswerText, it.TextOptions()) == "" {
			out = append(out, "free-text item has no expected answer")
		}
	}
	return out
}

func itemSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants plain decoded JSON, not Go literals.
		raw, err := json.Marshal(ItemSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal item schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse item schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(itemSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(itemSchemaURL)
	})
	return compiledSchema, compileErr
}

func flatten(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "; ")
}
