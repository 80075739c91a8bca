package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/content"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/server"
)

type stubFetcher struct {
	failLessons bool
	lessons     []content.Lesson
	quizzes     map[content.ID]string
}

func (f *stubFetcher) Languages(context.Context) ([]content.Language, error) {
	return []content.Language{{ID: "py", Name: "Python", Level: "beginner"}}, nil
}

func (f *stubFetcher) Lessons(context.Context, content.ID) ([]content.Lesson, error) {
	if f.failLessons {
		return nil, errors.New("connection refused")
	}
	return f.lessons, nil
}

func (f *stubFetcher) Quiz(_ context.Context, id content.ID) (json.RawMessage, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(q), nil
}

type memCompletion map[string]bool

func (c memCompletion) IsDone(id string) bool { return c[id] }
func (c memCompletion) MarkDone(id string)    { c[id] = true }
func (c memCompletion) ClearDone(id string)   { delete(c, id) }

func newStub() *stubFetcher {
	return &stubFetcher{
		lessons: []content.Lesson{
			{ID: "py-1", Title: "Print"},
			{ID: "py-2", Title: "Loops"},
		},
		quizzes: map[content.ID]string{
			"py-1": `[{"id":"a","question":"Which prints?","options":["echo","print"],"answer_index":1},` +
				`{"id":"b","question":"Loop keyword?","answer_text":"for"}]`,
		},
	}
}

func practice(t *testing.T, f *stubFetcher, done memCompletion, lessonID, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := runPractice(context.Background(), practiceOptions{
		Fetcher:    f,
		Completion: done,
		LanguageID: "py",
		LessonID:   content.ID(lessonID),
		In:         strings.NewReader(input),
		Out:        &out,
	})
	return out.String(), err
}

func TestPractice_AllCorrect(t *testing.T) {
	done := memCompletion{}
	out, err := practice(t, newStub(), done, "", "3\n2\n?\n FOR \n")
	require.NoError(t, err)

	assert.Contains(t, out, "Lesson: Print (py-1)")
	assert.Contains(t, out, "Enter a number from 1 to 2.")
	assert.Contains(t, out, "Example: for")
	assert.Contains(t, out, "── Summary: 2/2 correct ──")
	assert.Contains(t, out, "All correct. Lesson completed.")
	assert.True(t, done["py-1"])
}

func TestPractice_MistakeKeepsEarlierCompletion(t *testing.T) {
	done := memCompletion{"py-1": true}
	out, err := practice(t, newStub(), done, "py-1", "1\n\nwhile\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Already completed.")
	assert.Contains(t, out, "✗ Wrong. Answer: print")
	assert.Contains(t, out, "(empty answer)")
	assert.Contains(t, out, "✗ Not quite. Answer: for")
	assert.Contains(t, out, "── Summary: 0/2 correct ──")
	assert.True(t, done["py-1"], "a failed run must not clear completion")
}

func TestPractice_InputClosed(t *testing.T) {
	done := memCompletion{}
	out, err := practice(t, newStub(), done, "", "2\n")
	require.NoError(t, err)

	assert.Contains(t, out, "(input closed)")
	assert.NotContains(t, out, "Summary")
	assert.False(t, done["py-1"])
}

func TestPractice_NoQuiz(t *testing.T) {
	out, err := practice(t, newStub(), memCompletion{}, "py-2", "")
	require.NoError(t, err)
	assert.Contains(t, out, "This lesson has no quiz.")
}

func TestPractice_Errors(t *testing.T) {
	_, err := practice(t, newStub(), memCompletion{}, "nope", "")
	assert.ErrorContains(t, err, `lesson "nope" not found`)

	f := newStub()
	f.failLessons = true
	_, err = practice(t, f, memCompletion{}, "", "")
	assert.EqualError(t, err, "Could not fetch lessons.")

	f = newStub()
	f.lessons = nil
	_, err = practice(t, f, memCompletion{}, "", "")
	assert.ErrorContains(t, err, "has no lessons")
}

func TestPrintLanguagesAndLessons(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printLanguages(context.Background(), &out, newStub()))
	assert.Contains(t, out.String(), "Python")
	assert.Contains(t, out.String(), "1 languages")

	out.Reset()
	done := memCompletion{"py-2": true}
	require.NoError(t, printLessons(context.Background(), &out, newStub(), "py", done))
	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.NotContains(t, lines[2], "✓")
	assert.Contains(t, lines[3], "✓")
	assert.Contains(t, out.String(), "2 lessons, 1 completed")

	f := newStub()
	f.failLessons = true
	err := printLessons(context.Background(), &out, f, "py", nil)
	assert.ErrorContains(t, err, "Could not fetch lessons.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "zażółć ...", truncate("zażółć gęślą jaźń", 10))
}

// TestPractice_AgainstSampleData runs a quiz from the bundled data
// directory through the local server and the HTTP client.
func TestPractice_AgainstSampleData(t *testing.T) {
	srv := httptest.NewServer(server.New(server.Options{DataDir: "../data"}).Handler())
	defer srv.Close()

	done := memCompletion{}
	var out bytes.Buffer
	err := runPractice(context.Background(), practiceOptions{
		Fetcher:    content.NewClient(srv.URL),
		Completion: done,
		LanguageID: "go",
		LessonID:   "go-hello",
		In:         strings.NewReader("main\n1\n"),
		Out:        &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "── Summary: 2/2 correct ──")
	assert.True(t, done["go-hello"])
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "nauka (devel)\n", out.String())
}
