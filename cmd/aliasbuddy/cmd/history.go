package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/darkodi/alias-buddy/internal/model"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var (
		limit int
		clear bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear generated aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if clear {
				if err := a.svc.ClearHistory(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			}

			aliases, err := a.svc.History(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(aliases) > limit {
				aliases = aliases[:limit]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tPROJECT\tENV\tCREATED")
			for _, al := range aliases {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", al.Email, al.Project, model.EnvironmentLabel(al.Environment), al.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to show (0 for all)")
	cmd.Flags().BoolVar(&clear, "clear", false, "delete the whole history")
	return cmd
}
