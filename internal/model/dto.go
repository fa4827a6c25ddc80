package model

// ValidateResponse is returned by the validation endpoint
type ValidateResponse struct {
	Valid     bool        `json:"valid"`
	Errors    FieldErrors `json:"errors"`
	Remaining int         `json:"remaining"`
}

// GenerateResponse is returned after a successful generation
type GenerateResponse struct {
	Aliases []GeneratedAlias `json:"aliases"`
}

// HistoryResponse lists stored aliases, newest first
type HistoryResponse struct {
	Aliases []GeneratedAlias `json:"aliases"`
	Count   int              `json:"count"`
}

// UpdateSettingsRequest is the body of PUT /settings
type UpdateSettingsRequest struct {
	Environment string `json:"environment" validate:"required,max=32"`
	Quantity    int    `json:"quantity" validate:"gte=1,lte=1000"`
	IncludeDate *bool  `json:"includeDate" validate:"required"`
}

// CopiedRequest is the body of POST /aliases/copied
type CopiedRequest struct {
	Type  string `json:"type" validate:"required,oneof=all individual"`
	Count int    `json:"count" validate:"gte=0"`
}

// RemainingResponse reports how many suffix characters fit
type RemainingResponse struct {
	Email     string `json:"email"`
	Remaining int    `json:"remaining"`
}

// ShareResponse carries a social share link
type ShareResponse struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// RecentProjectsResponse lists recently used project names
type RecentProjectsResponse struct {
	Projects []string `json:"projects"`
}
