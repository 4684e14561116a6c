package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordflow/constants"
	"github.com/jsphweid/chordflow/db"
	"github.com/jsphweid/chordflow/logging"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "chordflow",
	Short: "Chord chart transposer and live song server",
	Long: `chordflow stores songs written as lyrics with inline [chord] annotations,
transposes and re-arranges them, exports chord charts as MIDI and serves
them to a live audience over HTTP and websockets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		format, err := logging.ParseFormat(logFormat)
		if err != nil {
			return err
		}
		logging.InitLogger(level, format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", constants.GetLogFormat(), "json or text")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// openStore opens the configured store, seeding it when empty.
func openStore(ctx context.Context) (db.Store, error) {
	store, err := db.Open(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := db.Seed(ctx, store); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
