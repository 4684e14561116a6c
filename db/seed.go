package db

import (
	"context"

	"github.com/jsphweid/chordflow/logging"
	"github.com/jsphweid/chordflow/model"
)

// DemoSongs is what an empty library starts with.
func DemoSongs() []model.Song {
	return []model.Song{
		{
			ID:            "1",
			Title:         "Hallelujah",
			Artist:        "Leonard Cohen",
			Key:           "C",
			Tempo:         60,
			TimeSignature: "6/8",
			Sections: []model.Section{
				{ID: "s1", Name: "Verse 1", Content: "[C]I've heard there was a [Am]secret chord\nThat [C]David played, and it [Am]pleased the Lord"},
				{ID: "s2", Name: "Chorus", Content: "Halle[F]lujah, Halle[Am]lujah\nHalle[F]lujah, Halle[C]lu[G]j[C]ah"},
			},
			Tags: []string{"Ballad", "Classic"},
		},
		{
			ID:            "2",
			Title:         "Yellow",
			Artist:        "Coldplay",
			Key:           "B",
			Tempo:         88,
			TimeSignature: "4/4",
			Sections: []model.Section{
				{ID: "s3", Name: "Intro", Content: "[B] [Bmaj7] [F#] [E]"},
				{ID: "s4", Name: "Verse 1", Content: "Look at the [B]stars, look how they [F#]shine for you\nAnd everything [E]you do"},
			},
			Tags: []string{"Rock", "Acoustic"},
		},
	}
}

// Seed saves the demo songs if the store has no songs yet. It reports
// whether anything was written.
func Seed(ctx context.Context, store Store) (bool, error) {
	songs, err := store.ListSongs(ctx)
	if err != nil {
		return false, err
	}
	if len(songs) > 0 {
		return false, nil
	}
	for _, song := range DemoSongs() {
		if _, err := store.SaveSong(ctx, song); err != nil {
			return false, err
		}
	}
	logging.Info("seeded song library", "songs", len(DemoSongs()))
	return true, nil
}
