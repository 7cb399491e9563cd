package cmd

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hintle/internal/httpserver"
	"github.com/robalobadob/hintle/internal/store"
)

func newServeCmd(o *overrides) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			app, err := wireApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			srv := httpserver.New(store.NewMemoryStore(cfg.JWTTTL()), httpserver.Options{
				Deps:         app.deps,
				Rules:        app.rules,
				Tokens:       httpserver.NewTokens(cfg.JWTSecret, cfg.JWTTTL()),
				DailySalt:    cfg.DailySalt,
				ClientOrigin: cfg.ClientOrigin,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info().Str("port", cfg.Port).Bool("offline", cfg.Offline).Int("length", cfg.WordLength).Msg("starting hintle server")
			if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
				log.Error().Err(err).Msg("server exited")
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&o.port, "port", "5175", "HTTP listen port")
	return cmd
}
