package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordflow/render"
)

var (
	transposeSemitones int
	transposeSpans     bool
)

func init() {
	transposeCmd.Flags().IntVarP(&transposeSemitones, "semitones", "s", 0, "half steps to shift, may be negative")
	transposeCmd.Flags().BoolVar(&transposeSpans, "spans", false, "print chord/lyric spans as JSON")
	rootCmd.AddCommand(transposeCmd)
}

var transposeCmd = &cobra.Command{
	Use:   "transpose [file]",
	Short: "Transposes chord text from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		text, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return transpose(cmd.OutOrStdout(), string(text), transposeSemitones, transposeSpans)
	},
}

func transpose(w io.Writer, text string, semitones int, spans bool) error {
	if spans {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(render.Text(text, semitones))
	}
	_, err := fmt.Fprint(w, render.TransposeText(text, semitones))
	return err
}
