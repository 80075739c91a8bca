package quiz

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextOptions controls how free-text answers are compared.
type TextOptions struct {
	Trim          bool
	CaseSensitive bool
}

// DefaultTextOptions are the rules used when a quiz item does not specify any.
var DefaultTextOptions = TextOptions{Trim: true, CaseSensitive: false}

// NormalizeText reduces a free-text answer to its comparable form.
//
// Normalization rules:
// - Leading/trailing whitespace is removed when opts.Trim is set
// - Every run of whitespace becomes a single ASCII space (always)
// - Text is lowercased unless opts.CaseSensitive is set
//
// Whitespace is Unicode White_Space plus U+FEFF. Bytes that are not valid
// UTF-8 are kept as they are, so distinct invalid inputs stay distinct.
func NormalizeText(raw string, opts TextOptions) string {
	if opts.Trim {
		raw = strings.TrimFunc(raw, isSpace)
	}
	return fold(raw, !opts.CaseSensitive)
}

// NormalizeTextPtr is NormalizeText for an optional value; nil is treated
// as the empty string.
func NormalizeTextPtr(raw *string, opts TextOptions) string {
	if raw == nil {
		return NormalizeText("", opts)
	}
	return NormalizeText(*raw, opts)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// fold replaces every whitespace run with one ' ' and optionally lowercases.
func fold(s string, lower bool) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteByte(s[i])
			inSpace = false
		case isSpace(r):
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
		default:
			if lower {
				r = unicode.ToLower(r)
			}
			b.WriteRune(r)
			inSpace = false
		}
		i += size
	}
	return b.String()
}
