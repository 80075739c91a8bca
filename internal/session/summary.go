package session

// Summary holds the data displayed once every item is answered.
type Summary struct {
	Score   int
	Total   int
	Passed  bool
	Message string
}

// BuildSummary creates a Summary from the current state.
func BuildSummary(s *State) Summary {
	sum := Summary{
		Score:  s.Score(),
		Total:  s.Total(),
		Passed: s.Passed(),
	}
	if sum.Passed {
		sum.Message = "All correct. Lesson completed."
	} else {
		sum.Message = "Try again (reset) to improve your score."
	}
	return sum
}
