package quiz

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		opts TextOptions
		want string
	}{
		{"trim and fold", "  A   b ", TextOptions{Trim: true}, "a b"},
		{"case sensitive", "A b", TextOptions{Trim: true, CaseSensitive: true}, "A b"},
		{"no trim keeps edge space", "  A  b ", TextOptions{Trim: false}, " a b "},
		{"tabs and newlines collapse", "x\t\n y", DefaultTextOptions, "x y"},
		{"empty", "", DefaultTextOptions, ""},
		{"only whitespace", " \t ", DefaultTextOptions, ""},
		{"only whitespace untrimmed", " \t ", TextOptions{}, " "},
		{"unicode fold", "ŻÓŁW", DefaultTextOptions, "żółw"},
		{"byte order mark trimmed", "\uFEFFParis\uFEFF", DefaultTextOptions, "paris"},
		{"byte order mark collapses", "a\uFEFF b", TextOptions{}, "a b"},
		{"no-break space", "a\u00a0\u3000b", DefaultTextOptions, "a b"},
		{"invalid bytes kept", "A\xff", DefaultTextOptions, "a\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.raw, tt.opts)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{"", " ", "  A   b ", "Hello\tWorld\n", "print( x )", "  mixed space "}
	optsList := []TextOptions{
		{Trim: true, CaseSensitive: false},
		{Trim: true, CaseSensitive: true},
		{Trim: false, CaseSensitive: false},
		{Trim: false, CaseSensitive: true},
	}

	for _, in := range inputs {
		for _, o := range optsList {
			once := NormalizeText(in, o)
			twice := NormalizeText(once, o)
			if once != twice {
				t.Errorf("not idempotent for %q %+v: %q then %q", in, o, once, twice)
			}
		}
	}
}

func TestNormalizeText_InvalidBytesStayDistinct(t *testing.T) {
	a := NormalizeText("a\xff", DefaultTextOptions)
	b := NormalizeText("a\xfe", DefaultTextOptions)
	if a == b {
		t.Errorf("distinct invalid inputs normalized to the same %q", a)
	}
}

func TestNormalizeTextPtr_Nil(t *testing.T) {
	if got := NormalizeTextPtr(nil, DefaultTextOptions); got != "" {
		t.Errorf("NormalizeTextPtr(nil) = %q, want empty", got)
	}
	s := " Paris "
	if got := NormalizeTextPtr(&s, DefaultTextOptions); got != "paris" {
		t.Errorf("NormalizeTextPtr(%q) = %q, want %q", s, got, "paris")
	}
}

func TestItem_IsCorrectText(t *testing.T) {
	item := Item{Type: TypeFreeText, AnswerText: "Paris", Trim: true}

	if !item.IsCorrectText(" paris ") {
		t.Error("expected \" paris \" to be accepted")
	}
	if item.IsCorrectText("Paris!") {
		t.Error("expected \"Paris!\" to be rejected")
	}

	strict := Item{Type: TypeFreeText, AnswerText: "Paris", Trim: true, CaseSensitive: true}
	if strict.IsCorrectText("paris") {
		t.Error("expected case-sensitive item to reject lowercase answer")
	}

	untrimmed := Item{Type: TypeFreeText, AnswerText: "Paris", Trim: false}
	if untrimmed.IsCorrectText(" Paris") {
		t.Error("expected untrimmed item to reject leading space")
	}
}
