package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var yellow = model.Song{
	ID:     "2",
	Title:  "Yellow",
	Artist: "Coldplay",
	Sections: []model.Section{
		{ID: "s3", Name: "Intro"},
		{ID: "s4", Name: "Verse 1"},
	},
}

type stubSuggester struct {
	order []string
	err   error
	delay time.Duration
}

func (s stubSuggester) Suggest(ctx context.Context, song model.Song) ([]string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.order, s.err
}

func TestHTTPSuggester(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`["Intro", "Verse 1", "Intro"]`))
	}))
	defer srv.Close()

	order, err := NewHTTPSuggester(srv.URL).Suggest(context.Background(), yellow)
	require.NoError(t, err)
	assert.Equal(t, []string{"Intro", "Verse 1", "Intro"}, order)
	assert.Equal(t, request{Title: "Yellow", Artist: "Coldplay", Sections: []string{"Intro", "Verse 1"}}, got)
}

func TestHTTPSuggesterStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPSuggester(srv.URL).Suggest(context.Background(), yellow)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}

func TestDecodeOrder(t *testing.T) {
	order, err := decodeOrder([]byte("Sure!\n```json\n[\"Verse 1\", \"Intro\"]\n```"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Verse 1", "Intro"}, order)

	_, err = decodeOrder([]byte("no idea"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = decodeOrder([]byte("[1, 2]"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SUGGEST_URL", "")
	assert.Nil(t, FromEnv())

	t.Setenv("SUGGEST_URL", "http://localhost:9999/suggest")
	s, ok := FromEnv().(*HTTPSuggester)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:9999/suggest", s.URL)
}

func TestArrange(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the suggestion", func(t *testing.T) {
		order, sections, fallback := Arrange(ctx, stubSuggester{order: []string{"verse 1", "Intro", "Outro"}}, yellow, time.Second)
		assert.False(t, fallback)
		assert.Equal(t, []string{"verse 1", "Intro", "Outro"}, order)
		require.Len(t, sections, 2)
		assert.Equal(t, "s4", sections[0].ID)
		assert.Equal(t, "s3", sections[1].ID)
	})

	fallbacks := map[string]stubSuggester{
		"error":      {err: errors.New("boom")},
		"empty":      {order: []string{}},
		"no matches": {order: []string{"Bridge"}},
		"timeout":    {order: []string{"Intro"}, delay: time.Second},
	}
	for name, s := range fallbacks {
		t.Run(name, func(t *testing.T) {
			order, sections, fallback := Arrange(ctx, s, yellow, 20*time.Millisecond)
			assert.True(t, fallback)
			assert.Equal(t, []string{"Intro", "Verse 1"}, order)
			assert.Equal(t, yellow.Sections, sections)
		})
	}
}
