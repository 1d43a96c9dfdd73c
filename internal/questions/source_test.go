package questions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSSourceFetch(t *testing.T) {
	src := FSSource{FS: fstest.MapFS{
		"questions_level2.json": {Data: []byte(`["Tokyo", "osaka"]`)},
	}}

	phrases, err := src.Fetch(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo", "osaka"}, phrases)

	_, err = src.Fetch(context.Background(), "9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLevelNotFound))
}

func TestFSSourceRejectsMalformedJSON(t *testing.T) {
	src := FSSource{FS: fstest.MapFS{
		"questions_level1.json": {Data: []byte(`{"not": "an array"}`)},
	}}
	_, err := src.Fetch(context.Background(), "1")
	require.Error(t, err)
}

func TestFSSourceLevels(t *testing.T) {
	src := FSSource{FS: fstest.MapFS{
		"questions_level3.json": {Data: []byte(`[]`)},
		"questions_level1.json": {Data: []byte(`[]`)},
		"README.md":             {Data: []byte(`hi`)},
	}}
	levels, err := src.Levels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, levels)
}

func TestEmbeddedHasDefaultLevel(t *testing.T) {
	phrases, err := Embedded().Fetch(context.Background(), "1")
	require.NoError(t, err)
	require.NotEmpty(t, phrases)
	assert.Contains(t, phrases, "tokyo")
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/questions_level1.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["neko","inu"]`))
	}))
	t.Cleanup(srv.Close)

	src := NewHTTPSource(srv.URL + "/data/")
	phrases, err := src.Fetch(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"neko", "inu"}, phrases)

	_, err = src.Fetch(context.Background(), "2")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}
