package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"deptsite/internal/game"
	"deptsite/internal/ui"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List careers game storylines and careers",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			cat := game.LoadCatalog(cmd.Context(), e.cache)
			out := cmd.OutOrStdout()
			if !cat.Available() {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" no playable scenarios"))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Scenarios"))
			for _, sc := range cat.Scenarios {
				status := ui.Good.Render("ok")
				if err := sc.Validate(); err != nil {
					status = ui.Bad.Render(err.Error())
				}
				fmt.Fprintf(out, "  %s %s %s\n", ui.H2.Render(sc.DisplayTitle()), ui.Muted.Render("("+sc.ID+")"), status)
				for i, m := range sc.Missions {
					fmt.Fprintf(out, "    %d. %s %s\n", i+1, m.Title, ui.Muted.Render(fmt.Sprintf("%d options", len(m.Options))))
				}
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Heading(ui.IconCompass, "Careers"))
			for _, c := range cat.Careers {
				fmt.Fprintf(out, "  %s %s\n", ui.LabelValue(c.ID, c.Name), ui.Muted.Render(fmt.Sprint(c.Tags)))
			}
			return nil
		},
	}
}
