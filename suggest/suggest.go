// Package suggest asks an external service for a live arrangement of a
// song and falls back to the authored section order when it cannot help.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jsphweid/chordflow/arrangement"
	"github.com/jsphweid/chordflow/constants"
	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/logging"
	"github.com/jsphweid/chordflow/model"
)

type Suggester interface {
	// Suggest returns an ordered list of section names, repeats allowed.
	Suggest(ctx context.Context, song model.Song) ([]string, error)
}

type request struct {
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	Sections []string `json:"sections"`
}

type HTTPSuggester struct {
	URL    string
	Client *http.Client
}

func NewHTTPSuggester(url string) *HTTPSuggester {
	return &HTTPSuggester{URL: url, Client: &http.Client{}}
}

// FromEnv returns nil when no suggestion service is configured.
func FromEnv() Suggester {
	url := constants.GetSuggestURL()
	if url == "" {
		return nil
	}
	return NewHTTPSuggester(url)
}

func (h *HTTPSuggester) Suggest(ctx context.Context, song model.Song) ([]string, error) {
	body, err := json.Marshal(request{
		Title:    song.Title,
		Artist:   song.Artist,
		Sections: song.SectionNames(),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "encode suggestion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, "build suggestion request")
	}
	req.Header.Set("Content-Type", "application/json")
	if id := logging.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, "call suggestion service")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxRequestBytes))
	if err != nil {
		return nil, apperrors.Wrap(err, "read suggestion response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion service returned %d: %w", resp.StatusCode, apperrors.ErrUnavailable)
	}
	return decodeOrder(data)
}

// decodeOrder accepts a bare JSON array of strings or text with one
// embedded in it, such as a fenced code block.
func decodeOrder(data []byte) ([]string, error) {
	var order []string
	if err := json.Unmarshal(data, &order); err == nil {
		return order, nil
	}

	text := string(data)
	start, end := strings.Index(text, "["), strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, apperrors.NewParse("suggestion", "no JSON array in response", nil)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &order); err != nil {
		return nil, apperrors.NewParse("suggestion", "malformed JSON array", err)
	}
	return order, nil
}

// Arrange asks s for an order within timeout. fallback is true when the
// authored order was used instead: on error, timeout, an empty answer or
// an answer naming none of the song's sections.
func Arrange(ctx context.Context, s Suggester, song model.Song, timeout time.Duration) (order []string, sections []model.Section, fallback bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	order, err := s.Suggest(ctx, song)
	switch {
	case err != nil:
		logging.WarnContext(ctx, "arrangement suggestion failed", "song_id", song.ID, "error", err)
	case len(order) == 0:
		logging.WarnContext(ctx, "arrangement suggestion was empty", "song_id", song.ID)
	case arrangement.Matches(song.Sections, order) == 0:
		logging.WarnContext(ctx, "arrangement suggestion matched no sections", "song_id", song.ID, "order", order)
	default:
		return order, arrangement.Apply(song.Sections, order), false
	}
	return song.SectionNames(), song.Sections, true
}
