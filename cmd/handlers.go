package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jsphweid/chordflow/arrangement"
	"github.com/jsphweid/chordflow/cache"
	"github.com/jsphweid/chordflow/constants"
	"github.com/jsphweid/chordflow/db"
	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/live"
	"github.com/jsphweid/chordflow/logging"
	"github.com/jsphweid/chordflow/midi"
	"github.com/jsphweid/chordflow/model"
	"github.com/jsphweid/chordflow/render"
	"github.com/jsphweid/chordflow/sheet"
	"github.com/jsphweid/chordflow/suggest"
	"github.com/jsphweid/chordflow/util"
)

// Set up by serve, or directly by tests.
var (
	store       db.Store
	suggester   suggest.Suggester
	renderCache = cache.New[string, []model.Line](constants.RenderCacheTTL, constants.RenderCacheSize)
	liveHub     *live.Hub
	liveSession *live.Session
)

func newRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/health", handleHealth).Methods("GET")
	router.HandleFunc("/transpose", handleTranspose).Methods("POST")
	router.HandleFunc("/render", handleRender).Methods("POST")
	router.HandleFunc("/import", handleImport).Methods("POST")
	router.HandleFunc("/songs", handleListSongs).Methods("GET")
	router.HandleFunc("/songs", handleSaveSong).Methods("POST")
	router.HandleFunc("/songs/{id}", handleGetSong).Methods("GET")
	router.HandleFunc("/songs/{id}", handleDeleteSong).Methods("DELETE")
	router.HandleFunc("/songs/{id}/render", handleRenderSong).Methods("GET")
	router.HandleFunc("/songs/{id}/arrangement", handleArrangement).Methods("POST")
	router.HandleFunc("/songs/{id}/midi", handleMidi).Methods("GET")
	router.HandleFunc("/setlists", handleListSetlists).Methods("GET")
	router.HandleFunc("/setlists", handleSaveSetlist).Methods("POST")
	router.HandleFunc("/live", handleGetLive).Methods("GET")
	router.HandleFunc("/live", handlePushLive).Methods("POST")
	router.HandleFunc("/live/ws", handleLiveWS).Methods("GET")
	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.Status(err)
	if status == http.StatusInternalServerError {
		logging.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &apperrors.ValidationError{Field: "body", Message: err.Error(), Err: err}
	}
	return nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidation(name, fmt.Sprintf("%q is not an integer", raw))
	}
	return n, nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleTranspose(w http.ResponseWriter, r *http.Request) {
	var input model.TextRequestBody
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.TransposeResponse{Text: render.TransposeText(input.Text, input.Semitones)})
}

// handleRender caches spans by content and offset; the cache key doubles
// as a strong ETag.
func handleRender(w http.ResponseWriter, r *http.Request) {
	var input model.TextRequestBody
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	key := cache.Key(input.Text, strconv.Itoa(input.Semitones))
	etag := `"` + key + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	lines, ok := renderCache.Get(key)
	if !ok {
		lines = render.Text(input.Text, input.Semitones)
		renderCache.Set(key, lines)
	}
	writeJSON(w, http.StatusOK, model.RenderResponse{Lines: lines})
}

func handleImport(w http.ResponseWriter, r *http.Request) {
	text, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes))
	if err != nil {
		writeError(w, r, apperrors.NewValidation("body", err.Error()))
		return
	}
	song, err := sheet.Parse(string(text))
	if err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := store.SaveSong(r.Context(), song)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := store.ListSongs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func handleSaveSong(w http.ResponseWriter, r *http.Request) {
	var song model.Song
	if err := decodeBody(w, r, &song); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := store.SaveSong(r.Context(), song)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := store.GetSong(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteSong(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleRenderSong(w http.ResponseWriter, r *http.Request) {
	semitones, err := queryInt(r, "semitones")
	if err != nil {
		writeError(w, r, err)
		return
	}
	song, err := store.GetSong(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	order := util.SplitList(r.URL.Query().Get("order"))
	writeJSON(w, http.StatusOK, render.Song(song, semitones, order))
}

func handleArrangement(w http.ResponseWriter, r *http.Request) {
	if suggester == nil {
		writeError(w, r, fmt.Errorf("arrangement suggestions are not configured: %w", apperrors.ErrUnavailable))
		return
	}
	song, err := store.GetSong(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, sections, fallback := suggest.Arrange(r.Context(), suggester, song, constants.GetSuggestTimeout())
	writeJSON(w, http.StatusOK, model.ArrangementResponse{Order: order, Sections: sections, Fallback: fallback})
}

func handleMidi(w http.ResponseWriter, r *http.Request) {
	semitones, err := queryInt(r, "semitones")
	if err != nil {
		writeError(w, r, err)
		return
	}
	preview, err := queryInt(r, "preview")
	if err != nil {
		writeError(w, r, err)
		return
	}
	song, err := store.GetSong(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	sections := arrangement.Apply(song.Sections, util.SplitList(r.URL.Query().Get("order")))
	s, err := midi.Export(song, sections, semitones)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if preview > 0 {
		s = midi.Excerpt(s, 0, preview)
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mid"`, song.ID))
	if err := midi.Write(w, s); err != nil {
		logging.WarnContext(r.Context(), "failed to write midi", "song_id", song.ID, "error", err)
	}
}

func handleListSetlists(w http.ResponseWriter, r *http.Request) {
	setlists, err := store.ListSetlists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, setlists)
}

func handleSaveSetlist(w http.ResponseWriter, r *http.Request) {
	var setlist model.Setlist
	if err := decodeBody(w, r, &setlist); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := store.SaveSetlist(r.Context(), setlist)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// renderLive loads and renders the song a performer pushed.
func renderLive(ctx context.Context, state model.LiveState) (model.RenderedSong, error) {
	song, err := store.GetSong(ctx, state.SongID)
	if err != nil {
		return model.RenderedSong{}, err
	}
	return render.Song(song, state.Semitones, state.Order), nil
}

func handlePushLive(w http.ResponseWriter, r *http.Request) {
	var state model.LiveState
	if err := decodeBody(w, r, &state); err != nil {
		writeError(w, r, err)
		return
	}
	if state.SongID == "" {
		writeError(w, r, apperrors.NewValidation("songId", "must not be empty"))
		return
	}
	liveSession.Push(state)
	writeJSON(w, http.StatusAccepted, state)
}

func handleGetLive(w http.ResponseWriter, r *http.Request) {
	state, ok := liveSession.Current()
	if !ok {
		writeError(w, r, apperrors.NewNotFound("live state", ""))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func handleLiveWS(w http.ResponseWriter, r *http.Request) {
	liveHub.ServeWS(w, r)
}
