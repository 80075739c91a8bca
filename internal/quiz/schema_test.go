package quiz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestLint_WellFormed(t *testing.T) {
	payload := decode(t, `[
		{"id":"q1","type":"mcq","question":"Pick","options":["x","y"],"answer_index":1},
		{"id":2,"type":"input","question":"Say hi","answer_text":"hi"}
	]`)
	assert.Empty(t, Lint(payload))
}

func TestLint_SchemaViolation(t *testing.T) {
	payload := decode(t, `{"id":"q1","type":"mcq","question":"Pick","options":["x","y"],"answer_index":"1"}`)
	problems := Lint(payload)
	require.NotEmpty(t, problems)
	assert.Equal(t, "q1", problems[0].ItemID)
	assert.NotContains(t, problems[0].Message, "\n")
}

func TestLint_AnswerIndexOutOfRange(t *testing.T) {
	payload := decode(t, `[{"question":"Pick","options":["x","y"],"answer_index":5}]`)
	problems := Lint(payload)
	require.Len(t, problems, 1)
	assert.Equal(t, 0, problems[0].Position)
	assert.Equal(t, "auto-0", problems[0].ItemID)
	assert.True(t, strings.Contains(problems[0].Message, "out of range"), problems[0].Message)
}

func TestLint_MissingExpectedText(t *testing.T) {
	payload := decode(t, `[{"id":"a","type":"input","question":"Anything?","answer_text":"   "}]`)
	problems := Lint(payload)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].Message, "no expected answer")
}

func TestLint_NoPayload(t *testing.T) {
	assert.Nil(t, Lint(nil))
	assert.Nil(t, Lint("text"))
}

func TestLint_DoesNotChangeNormalization(t *testing.T) {
	payload := decode(t, `[{"question":"Pick","options":["x"],"answer_index":3}]`)
	before := NormalizeItems(payload)
	_ = Lint(payload)
	assert.Equal(t, before, NormalizeItems(payload))
}
