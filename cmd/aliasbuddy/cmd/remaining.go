package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemainingCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remaining EMAIL",
		Short: "Show how many suffix characters fit for a base email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.svc.RemainingChars(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
