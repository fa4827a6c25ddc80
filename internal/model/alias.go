package model

import "time"

// AliasRequest carries the parameters of one generation call
type AliasRequest struct {
	BaseEmail   string `json:"baseEmail"`   // address the aliases forward to
	Feature     string `json:"feature"`     // free text, sanitized into the suffix
	Project     string `json:"project"`     // echoed into records as-is
	Environment string `json:"environment"` // dev, staging, prod, test or free text
	IncludeDate bool   `json:"includeDate"` // add a YYYYMMDD component
	Quantity    int    `json:"quantity"`    // number of aliases to produce
}

// GeneratedAlias is one generated address plus the request metadata
type GeneratedAlias struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Feature     string    `json:"feature"`
	Project     string    `json:"project"`
	Environment string    `json:"environment"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FieldErrors maps a request field name to a user-facing message.
// An empty map means the request is valid.
type FieldErrors map[string]string

// Field names used as FieldErrors keys
const (
	FieldBaseEmail = "baseEmail"
	FieldFeature   = "feature"
	FieldProject   = "project"
	FieldQuantity  = "quantity"
)

// FormSettings are the generation preferences remembered between calls
type FormSettings struct {
	Environment string `json:"environment"`
	Quantity    int    `json:"quantity"`
	IncludeDate bool   `json:"includeDate"`
}

// DefaultFormSettings returns the settings used before anything is saved
func DefaultFormSettings() FormSettings {
	return FormSettings{
		Environment: EnvDevelopment,
		Quantity:    1,
		IncludeDate: true,
	}
}

// Known environment tags
const (
	EnvDevelopment = "dev"
	EnvStaging     = "staging"
	EnvProduction  = "prod"
	EnvTesting     = "test"
)

// Environment pairs a tag with its display label
type Environment struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Environments lists the known tags in display order
var Environments = []Environment{
	{Value: EnvDevelopment, Label: "Development"},
	{Value: EnvStaging, Label: "Staging"},
	{Value: EnvProduction, Label: "Production"},
	{Value: EnvTesting, Label: "Testing"},
}

// EnvironmentLabel returns the display label for a tag, or the tag itself
// when it is not one of the known values.
func EnvironmentLabel(value string) string {
	for _, env := range Environments {
		if env.Value == value {
			return env.Label
		}
	}
	return value
}
