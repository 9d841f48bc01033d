package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		srv, err := server.New(server.Deps{
			Results:  b.results,
			Study:    b.studyService(ctx),
			Guidance: b.analyzer(ctx),
		}, cfg)
		if err != nil {
			return err
		}
		return srv.Run(ctx, cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LABAN_ADDR, default :8080)")
}
