// Package db persists songs and setlists. The rendering engine never
// touches it; callers load a song here and hand it to the render package.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/chordflow/constants"
	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/model"
)

type Store interface {
	ListSongs(ctx context.Context) ([]model.Song, error)
	GetSong(ctx context.Context, id string) (model.Song, error)
	// SaveSong inserts or replaces a song, assigning ids where missing.
	SaveSong(ctx context.Context, song model.Song) (model.Song, error)
	DeleteSong(ctx context.Context, id string) error
	ListSetlists(ctx context.Context) ([]model.Setlist, error)
	SaveSetlist(ctx context.Context, setlist model.Setlist) (model.Setlist, error)
	Close() error
}

// Open returns the store selected by constants.GetStoreKind.
func Open(ctx context.Context) (Store, error) {
	switch kind := constants.GetStoreKind(); kind {
	case "sqlite":
		return OpenSQLite(ctx, constants.GetDBPath())
	case "dynamodb":
		return OpenDynamo(ctx, DynamoConfig{
			Endpoint: constants.GetDynamoEndpoint(),
			Region:   constants.GetDynamoRegion(),
			Table:    constants.GetDynamoTable(),
		})
	default:
		return nil, apperrors.NewValidation("CHORDFLOW_STORE", fmt.Sprintf("unknown store %q", kind))
	}
}

func prepareSong(song model.Song) (model.Song, error) {
	song.Title = strings.TrimSpace(song.Title)
	if song.Title == "" {
		return song, apperrors.NewValidation("title", "must not be empty")
	}
	if song.ID == "" {
		song.ID = uuid.NewString()
	}
	sections := make([]model.Section, len(song.Sections))
	for i, sec := range song.Sections {
		if sec.ID == "" {
			sec.ID = uuid.NewString()
		}
		sections[i] = sec
	}
	song.Sections = sections
	if song.Tags == nil {
		song.Tags = []string{}
	}
	return song, nil
}

func prepareSetlist(setlist model.Setlist) (model.Setlist, error) {
	setlist.Name = strings.TrimSpace(setlist.Name)
	if setlist.Name == "" {
		return setlist, apperrors.NewValidation("name", "must not be empty")
	}
	if setlist.ID == "" {
		setlist.ID = uuid.NewString()
	}
	if setlist.SongIDs == nil {
		setlist.SongIDs = []string{}
	}
	return setlist, nil
}

func encodeDoc(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.Wrap(err, "encode document")
	}
	return string(b), nil
}

func decodeDoc(doc string, v any) error {
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return apperrors.NewParse("JSON", "stored document", err)
	}
	return nil
}
