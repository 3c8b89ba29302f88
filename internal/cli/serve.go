package cli

import (
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/ninedt-backend/internal"
)

// ninedt serve
func Serve(bootstrap Bootstrap) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serves games over HTTP and WebSocket",
		Long: heredoc.Doc(`serve starts the game API. Every game created through
			POST /games is independent and lives until it is deleted
			or the process exits. Game snapshots are pushed to
			clients connected to /games/{id}/ws.`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			conf, logger := bootstrap(path, os.Stdout)

			return app.RunApp(cmd.Context(), logger, conf)
		},
	}
}
