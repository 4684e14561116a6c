package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordflow/arrangement"
	"github.com/jsphweid/chordflow/midi"
	"github.com/jsphweid/chordflow/util"
)

var (
	midiOut       string
	midiSemitones int
	midiOrder     string
)

func init() {
	midiCmd.Flags().StringVarP(&midiOut, "output", "o", "", "file to write, stdout when empty")
	midiCmd.Flags().IntVarP(&midiSemitones, "semitones", "s", 0, "half steps to shift, may be negative")
	midiCmd.Flags().StringVar(&midiOrder, "order", "", "comma separated section names")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi <id>",
	Short: "Writes a song's chord chart as a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		song, err := store.GetSong(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		sections := arrangement.Apply(song.Sections, util.SplitList(midiOrder))
		s, err := midi.Export(song, sections, midiSemitones)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if midiOut != "" {
			f, err := os.Create(midiOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := midi.Write(w, s); err != nil {
			return err
		}
		if midiOut != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", midiOut)
		}
		return nil
	},
}
