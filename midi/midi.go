// Package midi turns a song's chord chart into a Standard MIDI File: one
// block chord per chord symbol, each held for a bar.
package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/chordflow/chord"
	"github.com/jsphweid/chordflow/constants"
	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/model"
	"github.com/jsphweid/chordflow/render"
)

const (
	resolution = smf.MetricTicks(480)
	channel    = 0
	velocity   = 90
)

// Meter parses a time signature like "6/8". Empty means 4/4.
func Meter(sig string) (num, denom uint8, err error) {
	if strings.TrimSpace(sig) == "" {
		return 4, 4, nil
	}
	parts := strings.Split(sig, "/")
	if len(parts) != 2 {
		return 0, 0, apperrors.NewValidation("timeSignature", fmt.Sprintf("%q is not a time signature", sig))
	}
	n, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	d, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || n < 1 || n > 32 || !isPowerOfTwo(d) || d > 32 {
		return 0, 0, apperrors.NewValidation("timeSignature", fmt.Sprintf("%q is not a time signature", sig))
	}
	return uint8(n), uint8(d), nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Export renders the chords of sections, shifted by semitones, as a
// single-track SMF. Chord symbols that have no voicing are skipped.
func Export(song model.Song, sections []model.Section, semitones int) (*smf.SMF, error) {
	num, denom, err := Meter(song.TimeSignature)
	if err != nil {
		return nil, err
	}
	tempo := song.Tempo
	if tempo <= 0 {
		tempo = constants.DefaultTempo
	}
	bar := resolution.Ticks4th() * 4 * uint32(num) / uint32(denom)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(song.Title))
	tr.Add(0, smf.MetaMeter(num, denom))
	tr.Add(0, smf.MetaTempo(float64(tempo)))

	for _, sec := range sections {
		for _, line := range render.Text(sec.Content, semitones) {
			for _, span := range line {
				if span.Kind != model.Chord {
					continue
				}
				notes := chord.Voicing(span.Text, constants.MidiOctave)
				if len(notes) == 0 {
					continue
				}
				for _, key := range notes {
					tr.Add(0, midi.NoteOn(channel, key, velocity))
				}
				for i, key := range notes {
					var delta uint32
					if i == 0 {
						delta = bar
					}
					tr.Add(delta, midi.NoteOff(channel, key))
				}
			}
		}
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = resolution
	if err := s.Add(tr); err != nil {
		return nil, apperrors.Wrap(err, "add track")
	}
	return s, nil
}

func Write(w io.Writer, s *smf.SMF) error {
	_, err := s.WriteTo(w)
	return apperrors.Wrap(err, "write midi")
}

// Read parses an SMF, turning decoder panics into errors.
// https://github.com/gomidi/midi/issues/20
func Read(r io.Reader) (s *smf.SMF, e error) {
	defer func() {
		if rec := recover(); rec != nil {
			s, e = nil, apperrors.NewParse("MIDI", fmt.Sprint(rec), nil)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, apperrors.NewParse("MIDI", err.Error(), err)
	}
	return res, nil
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "read midi file %s", filepath)
	}
	return Read(bytes.NewReader(dat))
}
