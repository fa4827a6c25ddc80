package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darkodi/alias-buddy/internal/service"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var (
		flags  requestFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate email aliases",
		Long:  `Generate one or more aliases and add them to the history.`,
		Example: `  aliasbuddy generate -e john@gmail.com -f "Login Flow" -p webapp -n 3
  aliasbuddy generate -e john@gmail.com -f signup -p webapp --env prod --no-date`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			aliases, err := a.svc.GenerateAliases(cmd.Context(), flags.request())
			if err != nil {
				var verr *service.ValidationError
				if errors.As(err, &verr) {
					printFieldErrors(cmd.ErrOrStderr(), verr.Fields)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(aliases)
			}
			for _, al := range aliases {
				fmt.Fprintln(out, al.Email)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print full records as JSON")
	return cmd
}
