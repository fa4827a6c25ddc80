package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/darkodi/alias-buddy/internal/model"
)

var errInvalidRequest = errors.New("request is invalid")

func newValidateCmd(opts *globalOptions) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a request without generating aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			errs := a.svc.Validate(flags.request())
			if len(errs) > 0 {
				printFieldErrors(cmd.ErrOrStderr(), errs)
				return errInvalidRequest
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// printFieldErrors writes one "field: message" line per error, sorted
func printFieldErrors(w io.Writer, errs model.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f, errs[f])
	}
}
