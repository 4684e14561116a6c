package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordflow/chord"
	"github.com/jsphweid/chordflow/constants"
	"github.com/jsphweid/chordflow/model"
	"github.com/jsphweid/chordflow/render"
	"github.com/jsphweid/chordflow/util"
)

var reportTop int

func init() {
	reportCmd.Flags().IntVar(&reportTop, "top", 10, "how many of the most used chords to list")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarizes the song library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		songs, err := store.ListSongs(cmd.Context())
		if err != nil {
			return err
		}
		setlists, err := store.ListSetlists(cmd.Context())
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), analyzeLibrary(songs, setlists), reportTop)
		return nil
	},
}

type libraryReport struct {
	numSongs    int
	numSetlists int
	numSections int
	// chord symbol as written -> occurrences
	chordCounts map[string]int
	// canonical root -> songs in that key
	keyCounts map[string]int
	// chord symbols with no voicing, e.g. typos or exotic suffixes
	unvoiced map[string]bool
}

func analyzeLibrary(songs []model.Song, setlists []model.Setlist) libraryReport {
	report := libraryReport{
		numSongs:    len(songs),
		numSetlists: len(setlists),
		chordCounts: make(map[string]int),
		keyCounts:   make(map[string]int),
		unvoiced:    make(map[string]bool),
	}

	for _, song := range songs {
		if root, ok := chord.RootClass(song.Key); ok {
			report.keyCounts[root.Name()] += 1
		}
		report.numSections += len(song.Sections)
		for _, sec := range song.Sections {
			for _, line := range render.Text(sec.Content, 0) {
				for _, span := range line {
					if span.Kind != model.Chord {
						continue
					}
					report.chordCounts[span.Text] += 1
					if chord.Voicing(span.Text, constants.MidiOctave) == nil {
						report.unvoiced[span.Text] = true
					}
				}
			}
		}
	}
	return report
}

func printReport(w io.Writer, report libraryReport, top int) {
	counts := make([]int, 0, len(report.chordCounts))
	for _, n := range report.chordCounts {
		counts = append(counts, n)
	}

	fmt.Fprintf(w, "songs: %v\n", report.numSongs)
	fmt.Fprintf(w, "setlists: %v\n", report.numSetlists)
	fmt.Fprintf(w, "sections: %v\n", report.numSections)
	fmt.Fprintf(w, "chords: %v (%v distinct)\n", util.Sum(counts), len(report.chordCounts))

	fmt.Fprintln(w, "keys:")
	for _, key := range util.GetKeysSorted(report.keyCounts) {
		fmt.Fprintf(w, "  %-3s %v\n", key, report.keyCounts[key])
	}

	chords := util.GetKeysSorted(report.chordCounts)
	sort.SliceStable(chords, func(i, j int) bool {
		return report.chordCounts[chords[i]] > report.chordCounts[chords[j]]
	})
	fmt.Fprintln(w, "most used chords:")
	for _, c := range chords[:util.Clamp(top, 0, len(chords))] {
		fmt.Fprintf(w, "  %-8s %v\n", c, report.chordCounts[c])
	}

	if len(report.unvoiced) > 0 {
		fmt.Fprintf(w, "chords without a voicing: %v\n", util.GetKeysSorted(report.unvoiced))
	}
}
