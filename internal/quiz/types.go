package quiz

// Type identifies how a quiz item is answered.
type Type string

const (
	TypeMultipleChoice Type = "mcq"   // Pick one of Options
	TypeFreeText       Type = "input" // Type the answer
)

// Item is a single normalized quiz question.
type Item struct {
	// ID identifies the item within one quiz. Synthesized as "auto-<position>"
	// when the payload omits it.
	ID string

	// Type is the answer format. Inferred when the payload omits it.
	Type Type

	// Question is the prompt shown to the learner.
	Question string

	// Options are the choices for a multiple-choice item, in display order.
	Options []string

	// AnswerIndex is the index into Options of the correct choice.
	// -1 when the payload does not carry one.
	AnswerIndex int

	// AnswerText is the canonical expected answer for a free-text item.
	AnswerText string

	// Trim and CaseSensitive are the comparison rules for free-text answers.
	Trim          bool
	CaseSensitive bool

	// Placeholder is an optional input hint for free-text items.
	Placeholder string
}

// TextOptions returns the comparison rules of a free-text item.
func (it Item) TextOptions() TextOptions {
	return TextOptions{Trim: it.Trim, CaseSensitive: it.CaseSensitive}
}

// IsMultipleChoice reports whether the item is answered by picking an option.
func (it Item) IsMultipleChoice() bool {
	return it.Type == TypeMultipleChoice
}

// IsFreeText reports whether the item is answered by typing text.
func (it Item) IsFreeText() bool {
	return it.Type == TypeFreeText
}

// IsCorrectChoice reports whether idx selects the correct option.
func (it Item) IsCorrectChoice(idx int) bool {
	return idx == it.AnswerIndex
}

// IsCorrectText reports whether raw matches the expected answer under the
// item's own comparison rules.
func (it Item) IsCorrectText(raw string) bool {
	opts := it.TextOptions()
	return NormalizeText(raw, opts) == NormalizeText(it.AnswerText, opts)
}
