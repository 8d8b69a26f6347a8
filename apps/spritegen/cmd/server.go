package spritegen

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jaym/spritegen/api"
	"github.com/jaym/spritegen/metadata"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo player with the generated thumbnails",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig()
		cobra.CheckErr(err)

		handler, closeDB, err := newServerHandler(cfg)
		cobra.CheckErr(err)
		defer closeDB()

		cobra.CheckErr(serve(cmd.Context(), cfg.Server.Listen, handler))
	},
}

func newServerHandler(cfg *Config) (http.Handler, func(), error) {
	var db *metadata.Database
	closeDB := func() {}
	if cfg.Paths.IndexDB != "" {
		if _, err := os.Stat(cfg.Paths.IndexDB); err == nil {
			db, err = metadata.OpenDatabase(cfg.Paths.IndexDB)
			if err != nil {
				return nil, nil, err
			}
			closeDB = func() { db.Close() } // nolint: errcheck
		} else {
			log.Warn().Str("path", cfg.Paths.IndexDB).Msg("cue index not found, cue lookups disabled")
		}
	}

	handler := api.NewApiHandler(db, api.Options{
		Title:     cfg.Server.Title,
		Video:     cfg.Server.Video,
		VTTPath:   cfg.Paths.VTT,
		JSONPath:  cfg.Paths.JSON,
		SpriteDir: cfg.Paths.SpritesDir,
	})
	return handler, closeDB, nil
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return srv.Shutdown(context.Background())
	})
	return g.Wait()
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", ":8991", "address to listen on")
	serveCmd.Flags().String("title", "Sprite Fight", "title of the demo player")
	serveCmd.Flags().String("video", "", "video played by the demo page, a URL or a local file")

	bindFlag("server.listen", serveCmd, "listen")
	bindFlag("server.title", serveCmd, "title")
	bindFlag("server.video", serveCmd, "video")
}
