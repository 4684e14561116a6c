package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/chordflow/chord"
	"github.com/jsphweid/chordflow/midi"
	"github.com/jsphweid/chordflow/pitch"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the chords sounding in a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), s)
		return nil
	},
}

type onset struct {
	tick  uint64
	notes []uint8
}

// onsets groups note starts that share a tick, per track.
func onsets(s *smf.SMF) [][]onset {
	res := make([][]onset, len(s.Tracks))
	for i, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			var ch, key, vel uint8
			if !gomidi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				continue
			}
			n := len(res[i])
			if n > 0 && res[i][n-1].tick == abs {
				res[i][n-1].notes = append(res[i][n-1].notes, key)
			} else {
				res[i] = append(res[i], onset{tick: abs, notes: []uint8{key}})
			}
		}
	}
	return res
}

func inspect(w io.Writer, s *smf.SMF) {
	fmt.Fprintf(w, "time format: %v\n", s.TimeFormat)
	for i, track := range onsets(s) {
		fmt.Fprintf(w, "track %d: %d onsets\n", i, len(track))
		for _, o := range track {
			names := make([]string, len(o.notes))
			for j, n := range o.notes {
				names[j] = pitch.Class(n % 12).Name()
			}
			fmt.Fprintf(w, "  %8d  %-16s %v\n", o.tick, chord.CreateChordKey(o.notes), names)
		}
	}
}
