package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ParseItems decodes a raw quiz payload and normalizes it.
// An empty body is treated like JSON null.
func ParseItems(raw []byte) ([]Item, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []Item{}, nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode quiz payload: %w", err)
	}
	return NormalizeItems(payload), nil
}

// NormalizeItems converts a decoded quiz payload into an ordered item list.
//
// A list is used as-is, a single object becomes a one-element list, and
// anything else (null, scalars) yields no items. Elements are never rejected:
// an item with a missing or out-of-range answer is kept and simply cannot be
// answered correctly.
func NormalizeItems(payload any) []Item {
	var elems []any
	switch p := payload.(type) {
	case []any:
		elems = p
	case map[string]any:
		elems = []any{p}
	default:
		return []Item{}
	}

	items := make([]Item, 0, len(elems))
	for i, e := range elems {
		obj, _ := e.(map[string]any)
		items = append(items, normalizeItem(i, obj))
	}
	return items
}

// SynthesizedID returns the id assigned to an item at position i that has none.
func SynthesizedID(i int) string {
	return "auto-" + strconv.Itoa(i)
}

func normalizeItem(pos int, obj map[string]any) Item {
	it := Item{
		ID:            idField(obj["id"]),
		Question:      stringField(obj["question"]),
		Options:       stringsField(obj["options"]),
		AnswerIndex:   intField(obj["answer_index"], -1),
		AnswerText:    stringField(obj["answer_text"]),
		Trim:          boolField(obj["trim"], DefaultTextOptions.Trim),
		CaseSensitive: boolField(obj["case_sensitive"], DefaultTextOptions.CaseSensitive),
		Placeholder:   stringField(obj["placeholder"]),
	}
	if it.ID == "" {
		it.ID = SynthesizedID(pos)
	}

	switch Type(stringField(obj["type"])) {
	case TypeMultipleChoice:
		it.Type = TypeMultipleChoice
	case TypeFreeText:
		it.Type = TypeFreeText
	default:
		it.Type = inferType(obj)
	}
	return it
}

// inferType picks multiple-choice when the element carries a non-empty
// options list.
func inferType(obj map[string]any) Type {
	if opts, ok := obj["options"].([]any); ok && len(opts) > 0 {
		return TypeMultipleChoice
	}
	return TypeFreeText
}

func idField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func stringsField(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, stringField(e))
	}
	return out
}

// intField accepts integral JSON numbers only; anything else yields def.
func intField(v any, def int) int {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}

func boolField(v any, def bool) bool {
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}
