package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a content identifier. The service may send ids as JSON strings or
// numbers; both decode to their string form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as a plain string.
func (id ID) String() string {
	return string(id)
}

// Language is a programming language offered by the service.
type Language struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Lesson is a single lesson of a language.
type Lesson struct {
	ID      ID     `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
