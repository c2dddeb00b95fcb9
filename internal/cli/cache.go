package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"deptsite/internal/ui"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the dataset cache",
	}
	cmd.AddCommand(newCacheLsCmd(), newCacheClearCmd(), newCacheInvalidateCmd())
	return cmd
}

func newCacheLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List cached datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			entries, err := e.cache.Entries()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconInfo+" cache is empty"))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconBox, "Cached datasets"))
			now := time.Now()
			for _, en := range entries {
				fmt.Fprintf(out, "  %-24s %5d rows  %-10s %s\n",
					en.Name, len(en.Rows), en.Age(now).Truncate(time.Second), ui.Freshness(e.cache.Stale(en)))
			}
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			n, err := e.cache.Clear()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone)+fmt.Sprintf(" removed %d cached datasets", n))
			return nil
		},
	}
}

func newCacheInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <dataset>...",
		Short: "Drop the cached copy of the named datasets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			for _, name := range args {
				if err := e.cache.Invalidate(name); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconRefresh)+" "+name)
			}
			return nil
		},
	}
}
