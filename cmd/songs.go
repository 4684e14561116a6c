package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordflow/model"
	"github.com/jsphweid/chordflow/render"
	"github.com/jsphweid/chordflow/sheet"
	"github.com/jsphweid/chordflow/util"
)

var (
	showSemitones int
	showOrder     string
)

func init() {
	showCmd.Flags().IntVarP(&showSemitones, "semitones", "s", 0, "half steps to shift, may be negative")
	showCmd.Flags().StringVar(&showOrder, "order", "", `comma separated section names, e.g. "Intro,Chorus,Chorus"`)
	rootCmd.AddCommand(songsCmd, showCmd, importCmd)
}

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "Lists stored songs",
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
		printSongs(cmd.OutOrStdout(), songs)
		return nil
	},
}

func printSongs(w io.Writer, songs []model.Song) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tARTIST\tKEY")
	for _, s := range songs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Artist, s.Key)
	}
	tw.Flush()
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Prints a song, transposed and arranged",
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
		printSong(cmd.OutOrStdout(), render.Song(song, showSemitones, util.SplitList(showOrder)))
		return nil
	},
}

func printSong(w io.Writer, song model.RenderedSong) {
	fmt.Fprintf(w, "%s - %s", song.Title, song.Artist)
	if song.Key != "" {
		fmt.Fprintf(w, " (key of %s)", song.Key)
	}
	fmt.Fprintln(w)
	for _, sec := range song.Sections {
		fmt.Fprintf(w, "\n[%s]\n", strings.ToUpper(sec.Name))
		for _, line := range sec.Lines {
			fmt.Fprintln(w, model.JoinSpans(line))
		}
	}
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Imports a song sheet into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		song, err := sheet.Parse(string(text))
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		saved, err := store.SaveSong(cmd.Context(), song)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
		return nil
	},
}
