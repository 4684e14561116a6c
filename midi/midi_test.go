package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteOn struct {
	tick uint64
	key  uint8
}

func noteOns(s *smf.SMF) []noteOn {
	var res []noteOn
	for _, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			var ch, key, vel uint8
			if midi.Message(ev.Message).GetNoteOn(&ch, &key, &vel) && vel > 0 {
				res = append(res, noteOn{abs, key})
			}
		}
	}
	return res
}

func TestMeter(t *testing.T) {
	num, denom, err := Meter("")
	require.NoError(t, err)
	assert.Equal(t, []uint8{4, 4}, []uint8{num, denom})

	num, denom, err = Meter(" 6 / 8 ")
	require.NoError(t, err)
	assert.Equal(t, []uint8{6, 8}, []uint8{num, denom})

	for _, bad := range []string{"4", "3/5", "0/4", "a/4", "4/4/4"} {
		_, _, err := Meter(bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, bad)
	}
}

func TestExportRoundTrip(t *testing.T) {
	song := model.Song{Title: "Test", Tempo: 90, TimeSignature: "3/4"}
	sections := []model.Section{
		{Name: "Verse", Content: "[C]la [Am]la\nnot a chord"},
		{Name: "Chorus", Content: "G/B"},
	}

	s, err := Export(song, sections, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	read, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, read.Tracks, 1)

	bar := uint64(resolution.Ticks4th()) * 3
	assert.Equal(t, []noteOn{
		// D major
		{0, 62}, {0, 66}, {0, 69},
		// B minor
		{bar, 71}, {bar, 74}, {bar, 78},
		// A/C#: bass below the root
		{2 * bar, 49}, {2 * bar, 69}, {2 * bar, 73}, {2 * bar, 76},
	}, noteOns(read))

	var bpm float64
	var num, denom uint8
	for _, ev := range read.Tracks[0] {
		ev.Message.GetMetaTempo(&bpm)
		ev.Message.GetMetaMeter(&num, &denom)
	}
	assert.InDelta(t, 90, bpm, 0.01)
	assert.Equal(t, uint8(3), num)
	assert.Equal(t, uint8(4), denom)
}

func TestExportDefaults(t *testing.T) {
	s, err := Export(model.Song{Title: "Empty"}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, noteOns(s))

	var bpm float64
	for _, ev := range s.Tracks[0] {
		ev.Message.GetMetaTempo(&bpm)
	}
	assert.InDelta(t, 120, bpm, 0.01)
}

func TestExportRejectsBadMeter(t *testing.T) {
	_, err := Export(model.Song{TimeSignature: "7"}, nil, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestExcerpt(t *testing.T) {
	sections := []model.Section{{Content: "[C] [F] [G]"}}
	s, err := Export(model.Song{Title: "Three"}, sections, 0)
	require.NoError(t, err)

	bar := uint64(resolution.Ticks4th()) * 4
	ex := Excerpt(s, bar, 3)
	// F major pulled to the start
	assert.Equal(t, []noteOn{{0, 65}, {0, 69}, {0, 72}}, noteOns(ex))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ex))
	_, err = Read(&buf)
	assert.NoError(t, err)
}

func TestExcerptDropsEndsOfSkippedNotes(t *testing.T) {
	sections := []model.Section{{Content: "[C] [F] [G]"}}
	s, err := Export(model.Song{Title: "Three"}, sections, 0)
	require.NoError(t, err)

	for _, maxNotes := range []int{1, 3, 4} {
		ex := Excerpt(s, 0, maxNotes)
		for i, track := range ex.Tracks {
			open := map[[2]uint8]int{}
			for _, ev := range track {
				msg := midi.Message(ev.Message)
				var ch, key, vel uint8
				switch {
				case msg.GetNoteStart(&ch, &key, &vel):
					open[[2]uint8{ch, key}]++
				case msg.GetNoteEnd(&ch, &key):
					k := [2]uint8{ch, key}
					require.Positive(t, open[k], "track %d: note off for %d without note on (max %d)", i, key, maxNotes)
					open[k]--
				}
			}
			for k, n := range open {
				assert.Zero(t, n, "track %d: note %d left sounding (max %d)", i, k[1], maxNotes)
			}
		}
	}
	assert.Len(t, noteOns(Excerpt(s, 0, 4)), 4)
}

func TestReadMidiFile(t *testing.T) {
	s, err := Export(model.Song{Title: "File"}, []model.Section{{Content: "[E]"}}, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "song.mid")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Write(f, s))
	require.NoError(t, f.Close())

	read, err := ReadMidiFile(path)
	require.NoError(t, err)
	assert.Len(t, noteOns(read), 3)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.mid")
	require.NoError(t, os.WriteFile(garbage, []byte("not midi"), 0o644))
	_, err = ReadMidiFile(garbage)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
