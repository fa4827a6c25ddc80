package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darkodi/alias-buddy/internal/export"
)

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as CSV or JSON",
		Long: `Write the alias history to stdout, or to a file with --output.
Pass --output - to write to stdout explicitly, or --output auto to use the
default email-aliases-YYYY-MM-DD name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			// Render first so a bad format or storage error leaves no file behind
			var buf bytes.Buffer
			n, err := a.svc.Export(cmd.Context(), &buf, format)
			if err != nil {
				return err
			}

			if output == "auto" {
				output = a.svc.ExportFilename(format)
			}
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}

			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d aliases to %s\n", n, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", export.FormatCSV, "csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}
