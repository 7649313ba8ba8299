package obsidian

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(handler http.Handler) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	c := New(Config{
		BaseURL: ts.URL + "/vault/",
		APIKey:  "test-key",
	})
	return c, ts
}

func TestListDirSendsAuthAndAccept(t *testing.T) {
	var gotAuth, gotAccept, gotPath string
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"files":["Maths/","todo.md"]}`))
	}))
	defer ts.Close()

	files, err := c.ListDir(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Maths/", "todo.md"}, files)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "/vault/", gotPath)
}

func TestListDirEncodesSegments(t *testing.T) {
	var gotPath string
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"files":[]}`))
	}))
	defer ts.Close()

	_, err := c.ListDir(context.Background(), "Course Notes/α β")
	require.NoError(t, err)
	assert.Equal(t, "/vault/Course Notes/α β/", gotPath)
}

func TestEncodePath(t *testing.T) {
	assert.Equal(t, "", EncodePath(""))
	assert.Equal(t, "Maths", EncodePath("Maths"))
	assert.Equal(t, "Course%20Notes/%CE%B1%20%CE%B2", EncodePath("Course Notes/α β"))
}

func TestListDirNon2xxIsStatusError(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := c.ListDir(context.Background(), "Maths")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestListDirMalformedBody(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer ts.Close()

	_, err := c.ListDir(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestListDirMissingFilesArray(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	_, err := c.ListDir(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestListDirEmptyFilesArrayIsValid(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"files":[]}`))
	}))
	defer ts.Close()

	files, err := c.ListDir(context.Background(), "Maths")
	require.NoError(t, err)
	assert.Empty(t, files)
}
