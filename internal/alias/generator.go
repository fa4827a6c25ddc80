package alias

import (
	"time"

	"github.com/darkodi/alias-buddy/internal/encoder"
	"github.com/darkodi/alias-buddy/internal/model"
)

// Generator constructs aliases. It holds no state between calls beyond its
// random source and clock.
type Generator struct {
	hasher *encoder.Hasher
	now    func() time.Time
}

// NewGenerator creates a Generator. Nil arguments fall back to the global
// random source and time.Now.
func NewGenerator(hasher *encoder.Hasher, now func() time.Time) *Generator {
	if hasher == nil {
		hasher = encoder.NewHasher(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{hasher: hasher, now: now}
}

// ShortHash returns a fresh random token of HashLength characters
func (g *Generator) ShortHash() string {
	return g.hasher.Hash()
}

// Suffix assembles one suffix for the feature using today's date when
// requested and a fresh hash. Validation uses it to project lengths.
func (g *Generator) Suffix(feature string, includeDate bool) string {
	return BuildSuffix(SanitizeForEmail(feature), g.dateToken(includeDate), g.ShortHash())
}

// Generate builds req.Quantity aliases. The request must already have
// passed validation.
func (g *Generator) Generate(req model.AliasRequest) []model.GeneratedAlias {
	localPart, domain := ParseEmail(req.BaseEmail)
	feature := SanitizeForEmail(req.Feature)
	date := g.dateToken(req.IncludeDate)

	aliases := make([]model.GeneratedAlias, 0, max(req.Quantity, 0))
	for i := 0; i < req.Quantity; i++ {
		suffix := BuildSuffix(feature, date, g.ShortHash())
		aliases = append(aliases, model.GeneratedAlias{
			ID:          g.ShortHash(),
			Email:       localPart + "+" + suffix + "@" + domain,
			Feature:     req.Feature,
			Project:     req.Project,
			Environment: req.Environment,
			CreatedAt:   g.now(),
		})
	}

	return aliases
}

func (g *Generator) dateToken(includeDate bool) string {
	if !includeDate {
		return ""
	}
	return FormatDate(g.now())
}
