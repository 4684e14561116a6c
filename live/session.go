package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/jsphweid/chordflow/logging"
	"github.com/jsphweid/chordflow/model"
)

// RenderFunc produces the song followers should see for state.
type RenderFunc func(ctx context.Context, state model.LiveState) (model.RenderedSong, error)

// Message is what followers receive. Error is set instead of Song when
// the pushed state could not be rendered.
type Message struct {
	State model.LiveState     `json:"state"`
	Song  *model.RenderedSong `json:"song,omitempty"`
	Error string              `json:"error,omitempty"`
}

// Session coalesces pushes from the performer: a burst of updates inside
// the debounce window is rendered and broadcast once, with the last state.
type Session struct {
	hub       *Hub
	render    RenderFunc
	debounced func(f func())

	// flushMu serializes renders so an older state never lands after a
	// newer one.
	flushMu sync.Mutex

	mu      sync.Mutex
	pending *model.LiveState
	current *model.LiveState
}

func NewSession(hub *Hub, render RenderFunc, wait time.Duration) *Session {
	return &Session{
		hub:       hub,
		render:    render,
		debounced: debounce.New(wait),
	}
}

func (s *Session) Push(state model.LiveState) {
	s.mu.Lock()
	s.pending = &state
	s.mu.Unlock()
	s.debounced(s.flush)
}

// Current is the last state that was broadcast.
func (s *Session) Current() (model.LiveState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.LiveState{}, false
	}
	return *s.current, true
}

func (s *Session) flush() {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	state := s.pending
	s.pending = nil
	s.mu.Unlock()
	if state == nil {
		return
	}

	msg := Message{State: *state}
	song, err := s.render(context.Background(), *state)
	if err != nil {
		logging.Warn("live render failed", "song_id", state.SongID, "error", err)
		msg.Error = err.Error()
	} else {
		msg.Song = &song
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("failed to marshal live message", "error", err)
		return
	}

	s.mu.Lock()
	if s.pending != nil {
		// A newer push arrived while rendering; its flush is already queued.
		s.mu.Unlock()
		logging.Debug("live state superseded", "song_id", state.SongID, "semitones", state.Semitones)
		return
	}
	s.current = state
	s.mu.Unlock()
	s.hub.Broadcast(data)
	logging.Debug("live state broadcast", "song_id", state.SongID, "semitones", state.Semitones, "clients", s.hub.ClientCount())
}
