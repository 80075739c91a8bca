package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.EscapedPath()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Languages(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/languages": `[{"id":"python","name":"Python","level":"beginner"},{"id":2,"name":"Go","level":"intermediate"}]`,
	})
	c := NewClient(srv.URL + "/")

	langs, err := c.Languages(t.Context())
	require.NoError(t, err)
	require.Len(t, langs, 2)
	assert.Equal(t, Language{ID: "python", Name: "Python", Level: "beginner"}, langs[0])
	assert.Equal(t, ID("2"), langs[1].ID)
}

func TestClient_LessonsNull(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/lessons/python": `null`,
	})
	c := NewClient(srv.URL)

	lessons, err := c.Lessons(t.Context(), "python")
	require.NoError(t, err)
	assert.NotNil(t, lessons)
	assert.Empty(t, lessons)
}

func TestClient_LessonsEscapesID(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/lessons/" + url.PathEscape("c++/basics"): `[{"id":"l1","title":"Hello","content":"print"}]`,
	})
	c := NewClient(srv.URL)

	lessons, err := c.Lessons(t.Context(), "c++/basics")
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Hello", lessons[0].Title)
}

func TestClient_LessonsEscapedPath(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/lessons/c++%2Fbasics": `[]`,
	})
	c := NewClient(srv.URL)

	_, err := c.Lessons(t.Context(), "c++/basics")
	require.NoError(t, err)
}

func TestClient_TimeoutOptionOrder(t *testing.T) {
	hc := &http.Client{}
	c := NewClient("http://example.test", WithTimeout(2*time.Second), WithHTTPClient(hc))
	assert.Equal(t, 2*time.Second, c.http.Timeout)
	assert.Zero(t, hc.Timeout, "caller's client must not be modified")

	c = NewClient("http://example.test", WithHTTPClient(http.DefaultClient), WithTimeout(3*time.Second))
	assert.Equal(t, 3*time.Second, c.http.Timeout)
	assert.Zero(t, http.DefaultClient.Timeout)
	assert.NotSame(t, http.DefaultClient, c.http)

	c = NewClient("http://example.test", WithHTTPClient(hc))
	assert.Same(t, hc, c.http)
}

func TestClient_QuizRaw(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/quiz/l1": `{"question":"Q","options":["a","b"],"answer_index":1}`,
	})
	c := NewClient(srv.URL)

	raw, err := c.Quiz(t.Context(), "l1")
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := newTestServer(t, map[string]string{})
	c := NewClient(srv.URL)

	_, err := c.Languages(t.Context())
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base)
	_, err := c.Quiz(t.Context(), "l1")
	require.Error(t, err)

	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestClient_BadJSON(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/languages": `{"not":"a list"}`,
	})
	c := NewClient(srv.URL)

	_, err := c.Languages(t.Context())
	require.Error(t, err)
}

func TestID_UnmarshalJSON(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":12,"c":null}`), &v))
	assert.Equal(t, ID("x"), v.A)
	assert.Equal(t, ID("12"), v.B)
	assert.Equal(t, ID(""), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}
