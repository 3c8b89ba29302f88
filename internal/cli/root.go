package cli

import (
	"io"
	"log/slog"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/ninedt-backend/internal/config"
)

// Bootstrap loads the configuration at path and builds a logger writing to out.
type Bootstrap func(path string, out io.Writer) (*config.Config, *slog.Logger)

func Root(bootstrap Bootstrap) *cobra.Command {
	root := &cobra.Command{
		Use:   "ninedt",
		Short: "Play 9dt against a remote move oracle",
		Long: heredoc.Doc(`ninedt is a 4x4 four-in-a-row game. Tiles fall to the
			lowest free cell of the chosen column and the first player
			to line up four of their tiles wins.

			The opponent is a remote move oracle reached over HTTP.
			Games can be played in the terminal or served to browsers
			through the HTTP and WebSocket API.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to the config file (default ./config.yml)")

	root.AddCommand(Serve(bootstrap))
	root.AddCommand(Play(bootstrap))

	return root
}
