package render

import (
	"github.com/jsphweid/chordflow/arrangement"
	"github.com/jsphweid/chordflow/chord"
	"github.com/jsphweid/chordflow/model"
)

// Song arranges song's sections by order (see arrangement.Apply), renders
// each one and reports the key the song ends up in.
func Song(song model.Song, semitones int, order []string) model.RenderedSong {
	sections := arrangement.Apply(song.Sections, order)
	res := model.RenderedSong{
		SongID:      song.ID,
		Title:       song.Title,
		Artist:      song.Artist,
		Key:         chord.Transpose(song.Key, semitones),
		OriginalKey: song.Key,
		Semitones:   semitones,
		Sections:    make([]model.RenderedSection, 0, len(sections)),
	}
	for _, sec := range sections {
		res.Sections = append(res.Sections, model.RenderedSection{
			ID:    sec.ID,
			Name:  sec.Name,
			Lines: Text(sec.Content, semitones),
		})
	}
	return res
}
