package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"deptsite/internal/tui"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the careers game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines would tear the alt screen.
			slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()
			return tui.Run(cmd.Context(), e.cache, cmd.OutOrStdout())
		},
	}
	return cmd
}
