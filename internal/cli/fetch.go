package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"deptsite/internal/dataset"
	"deptsite/internal/ui"
)

func newFetchCmd() *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "fetch [dataset...]",
		Short: "Refetch datasets into the cache",
		Long:  "Refetch the named datasets (all configured ones by default) regardless of cache age.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			names := args
			if len(names) == 0 {
				names = datasetNames(e.cfg.Datasets)
			}
			return fetchAll(cmd.Context(), cmd.OutOrStdout(), e.cache, names, showDiff)
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "show a unified diff against the cached copy")
	return cmd
}

func datasetNames(gids map[string]string) []string {
	names := make([]string, 0, len(gids))
	for name := range gids {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func fetchAll(ctx context.Context, out io.Writer, cache *dataset.Cache, names []string, showDiff bool) error {
	failed := 0
	for _, name := range names {
		before, _ := cache.Peek(name)
		rows, err := cache.Refresh(ctx, name)
		if err != nil {
			failed++
			fmt.Fprintln(out, ui.Bad.Render(ui.IconError+" "+name)+" "+ui.Muted.Render(err.Error()))
			continue
		}
		fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone), name, ui.Muted.Render(fmt.Sprintf("%d rows", len(rows))))
		if !showDiff {
			continue
		}
		text, err := rowsDiff(name, before.Rows, rows)
		if err != nil {
			return err
		}
		if text == "" {
			fmt.Fprintln(out, ui.Muted.Render("   no changes"))
			continue
		}
		fmt.Fprint(out, text)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d datasets failed to fetch", failed, len(names))
	}
	return nil
}

// rowsDiff renders a unified diff between two versions of a dataset, one
// line per row with columns in a stable order.
func rowsDiff(name string, before, after []dataset.Row) (string, error) {
	a, b := dataset.Lines(before), dataset.Lines(after)
	if slices.Equal(a, b) {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        withNewlines(a),
		B:        withNewlines(b),
		FromFile: "cached/" + name,
		ToFile:   "fetched/" + name,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}
	return text, nil
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, "\n") + "\n"
	}
	return out
}
