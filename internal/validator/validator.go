package validator

import (
	"fmt"
	"strings"

	"github.com/darkodi/alias-buddy/internal/alias"
	"github.com/darkodi/alias-buddy/internal/model"
)

// Field error messages
const (
	MsgBaseEmailRequired = "Base email is required"
	MsgBaseEmailInvalid  = "Please enter a valid email address"
	MsgFeatureRequired   = "Feature name is required"
	MsgProjectRequired   = "Project name is required"
	MsgFeatureTooLong    = "Feature name too long for this email address"
)

// DefaultMaxQuantity matches the size of the stored history
const DefaultMaxQuantity = 1000

// AliasValidator checks generation requests before any alias is built
type AliasValidator struct {
	generator   *alias.Generator
	maxQuantity int
}

// NewAliasValidator creates a validator that projects suffix lengths with
// the same generator used for the real aliases.
func NewAliasValidator(gen *alias.Generator) *AliasValidator {
	if gen == nil {
		gen = alias.NewGenerator(nil, nil)
	}
	return &AliasValidator{
		generator:   gen,
		maxQuantity: DefaultMaxQuantity,
	}
}

// Validate returns every field error found in req. An empty map means the
// request can be passed to the generator.
func (v *AliasValidator) Validate(req model.AliasRequest) model.FieldErrors {
	errs := model.FieldErrors{}

	emailOK := false
	switch {
	case req.BaseEmail == "":
		errs[model.FieldBaseEmail] = MsgBaseEmailRequired
	case !alias.IsValidEmail(req.BaseEmail):
		errs[model.FieldBaseEmail] = MsgBaseEmailInvalid
	default:
		emailOK = true
	}

	if strings.TrimSpace(req.Feature) == "" {
		errs[model.FieldFeature] = MsgFeatureRequired
	}

	if strings.TrimSpace(req.Project) == "" {
		errs[model.FieldProject] = MsgProjectRequired
	}

	if req.Quantity < 1 || req.Quantity > v.maxQuantity {
		errs[model.FieldQuantity] = fmt.Sprintf("Quantity must be between 1 and %d", v.maxQuantity)
	}

	// Projected with a representative hash; hashes have a fixed width so the
	// real suffix has the same length.
	if emailOK {
		suffix := v.generator.Suffix(req.Feature, req.IncludeDate)
		if alias.WouldExceedLimit(req.BaseEmail, len(suffix)) {
			if _, taken := errs[model.FieldFeature]; !taken {
				errs[model.FieldFeature] = MsgFeatureTooLong
			}
		}
	}

	return errs
}

// ValidateBaseEmail checks only the base email field
func (v *AliasValidator) ValidateBaseEmail(email string) (string, bool) {
	if email == "" {
		return MsgBaseEmailRequired, false
	}
	if !alias.IsValidEmail(email) {
		return MsgBaseEmailInvalid, false
	}
	return "", true
}

// ============================================================
// CONFIGURATION METHODS
// ============================================================

// WithMaxQuantity sets the largest batch a single request may ask for
func (v *AliasValidator) WithMaxQuantity(n int) *AliasValidator {
	v.maxQuantity = n
	return v
}
