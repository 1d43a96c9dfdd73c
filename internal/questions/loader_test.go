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

	"github.com/verte-zerg/taipu/internal/model"
)

type recordingSource struct {
	data  map[string][]string
	calls []string
}

func (s *recordingSource) Fetch(_ context.Context, level string) ([]string, error) {
	s.calls = append(s.calls, level)
	phrases, ok := s.data[level]
	if !ok {
		return nil, ErrLevelNotFound
	}
	return phrases, nil
}

func TestLoaderLowercasesPhrases(t *testing.T) {
	src := FSSource{FS: fstest.MapFS{
		"questions_level2.json": {Data: []byte(`["ToKyo", " Osaka "]`)},
	}}
	phrases, err := NewLoader(src, "1").Load(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, []model.Phrase{"tokyo", "osaka"}, phrases)
}

func TestLoaderFallsBackToDefaultLevel(t *testing.T) {
	src := &recordingSource{data: map[string][]string{"1": {"sushi"}}}
	phrases, err := NewLoader(src, "1").Load(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, []model.Phrase{"sushi"}, phrases)
	assert.Equal(t, []string{"3", "1"}, src.calls)
}

func TestLoaderFallsBackOnHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/questions_level1.json":
			_, _ = w.Write([]byte(`["tokyo"]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	phrases, err := NewLoader(NewHTTPSource(srv.URL), "1").Load(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, []model.Phrase{"tokyo"}, phrases)
}

func TestLoaderFallsBackOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewLoader(NewHTTPSource(url), "1").Load(context.Background(), "2")
	require.Error(t, err)
}

func TestLoaderFailsWhenFallbackFails(t *testing.T) {
	src := &recordingSource{data: map[string][]string{}}
	_, err := NewLoader(src, "1").Load(context.Background(), "2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLevelNotFound))
	assert.Equal(t, []string{"2", "1"}, src.calls)
}

func TestLoaderEmptyLevelUsesDefault(t *testing.T) {
	src := &recordingSource{data: map[string][]string{"1": {"ame"}}}
	loader := NewLoader(src, "")
	assert.Equal(t, model.DefaultLevel, loader.DefaultLevel())
	phrases, err := loader.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []model.Phrase{"ame"}, phrases)
	assert.Equal(t, []string{"1"}, src.calls)
}
