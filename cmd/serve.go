package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chordflow/constants"
	"github.com/jsphweid/chordflow/live"
	"github.com/jsphweid/chordflow/logging"
	"github.com/jsphweid/chordflow/suggest"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the HTTP API and live session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, servePort)
	},
}

// NewHandler is the full API: routes wrapped in CORS, request ids and
// access logging.
func NewHandler() http.Handler {
	origins := constants.GetAllowedOrigins()
	if origins == nil {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "If-None-Match", "X-Request-ID"},
		ExposedHeaders: []string{"ETag", "X-Request-ID"},
	})
	return logging.CombinedMiddleware(c.Handler(newRouter()))
}

// LoadServeDeps opens the store, picks up the suggestion service and
// starts the live hub. The returned func releases them.
func LoadServeDeps(ctx context.Context) (func(), error) {
	s, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	store = s
	suggester = suggest.FromEnv()

	hubCtx, cancel := context.WithCancel(ctx)
	liveHub = live.NewHub()
	go liveHub.Run(hubCtx)
	liveSession = live.NewSession(liveHub, renderLive, constants.LiveDebounce)

	return func() {
		cancel()
		s.Close()
	}, nil
}

func serve(ctx context.Context, port int) error {
	release, err := LoadServeDeps(ctx)
	if err != nil {
		return err
	}
	defer release()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logging.Listening("http", port,
		"store", constants.GetStoreKind(),
		"suggestions", suggester != nil)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
