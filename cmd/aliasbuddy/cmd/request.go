package cmd

import (
	"github.com/spf13/cobra"

	"github.com/darkodi/alias-buddy/internal/model"
)

// requestFlags binds the AliasRequest fields to command flags
type requestFlags struct {
	baseEmail   string
	feature     string
	project     string
	environment string
	quantity    int
	noDate      bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	defaults := model.DefaultFormSettings()

	cmd.Flags().StringVarP(&f.baseEmail, "email", "e", "", "base email address")
	cmd.Flags().StringVarP(&f.feature, "feature", "f", "", "feature name")
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "project name")
	cmd.Flags().StringVar(&f.environment, "env", defaults.Environment, "environment tag (dev, staging, prod, test)")
	cmd.Flags().IntVarP(&f.quantity, "quantity", "n", defaults.Quantity, "number of aliases")
	cmd.Flags().BoolVar(&f.noDate, "no-date", !defaults.IncludeDate, "leave the date out of the suffix")
}

func (f *requestFlags) request() model.AliasRequest {
	return model.AliasRequest{
		BaseEmail:   f.baseEmail,
		Feature:     f.feature,
		Project:     f.project,
		Environment: f.environment,
		IncludeDate: !f.noDate,
		Quantity:    f.quantity,
	}
}
