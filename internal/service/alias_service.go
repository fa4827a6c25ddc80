package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/darkodi/alias-buddy/internal/alias"
	"github.com/darkodi/alias-buddy/internal/analytics"
	"github.com/darkodi/alias-buddy/internal/export"
	"github.com/darkodi/alias-buddy/internal/logger"
	"github.com/darkodi/alias-buddy/internal/metrics"
	"github.com/darkodi/alias-buddy/internal/model"
	"github.com/darkodi/alias-buddy/internal/repository"
	"github.com/darkodi/alias-buddy/internal/share"
	"github.com/darkodi/alias-buddy/internal/validator"
)

// ErrAliasNotFound is returned when no stored alias has the requested ID
var ErrAliasNotFound = errors.New("alias not found")

// ValidationError carries the field errors of a rejected request
type ValidationError struct {
	Fields model.FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// AliasService validates requests, generates aliases and owns their
// persistence and analytics.
type AliasService struct {
	repo      *repository.AliasRepository
	generator *alias.Generator
	validator *validator.AliasValidator
	sink      analytics.Sink
	log       *logger.Logger
	baseURL   string
	now       func() time.Time

	// serializes history read-modify-write
	mu sync.Mutex
}

// NewAliasService creates a new service instance. A nil sink discards events.
func NewAliasService(repo *repository.AliasRepository, gen *alias.Generator, sink analytics.Sink, log *logger.Logger) *AliasService {
	if gen == nil {
		gen = alias.NewGenerator(nil, nil)
	}
	if sink == nil {
		sink = analytics.Nop{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &AliasService{
		repo:      repo,
		generator: gen,
		validator: validator.NewAliasValidator(gen),
		sink:      sink,
		log:       log.Component("alias-service"),
		baseURL:   "http://localhost:8080",
		now:       time.Now,
	}
}

// WithBaseURL sets the public URL used in share links
func (s *AliasService) WithBaseURL(baseURL string) *AliasService {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

// WithMaxQuantity caps the batch size accepted by GenerateAliases
func (s *AliasService) WithMaxQuantity(n int) *AliasService {
	s.validator.WithMaxQuantity(n)
	return s
}

// Validate checks req without generating anything
func (s *AliasService) Validate(req model.AliasRequest) model.FieldErrors {
	return s.validator.Validate(req)
}

// GenerateAliases validates req, builds the aliases and records them in
// the history. Rejected requests return a *ValidationError.
func (s *AliasService) GenerateAliases(ctx context.Context, req model.AliasRequest) ([]model.GeneratedAlias, error) {
	// ============ STEP 1: Validation ============
	if errs := s.validator.Validate(req); len(errs) > 0 {
		for field := range errs {
			metrics.ValidationFailures.WithLabelValues(field).Inc()
		}
		s.sink.Capture(ctx, analytics.EventGenerationFailed, map[string]any{"reason": "validation_error"})
		return nil, &ValidationError{Fields: errs}
	}

	// ============ STEP 2: Generation ============
	aliases := s.generator.Generate(req)

	// ============ STEP 3: Persistence ============
	if err := s.persist(ctx, req, aliases); err != nil {
		s.log.Error("failed to store generated aliases", "error", err.Error())
		s.sink.Capture(ctx, analytics.EventGenerationFailed, map[string]any{
			"reason": "generation_error",
			"error":  err.Error(),
		})
		return nil, err
	}

	// ============ STEP 4: Tracking ============
	metrics.AliasesGenerated.WithLabelValues(environmentLabel(req.Environment)).Add(float64(len(aliases)))
	s.sink.Capture(ctx, analytics.EventAliasGenerated, map[string]any{
		"quantity":       req.Quantity,
		"environment":    req.Environment,
		"includes_date":  req.IncludeDate,
		"feature_length": len(req.Feature),
		"project":        req.Project,
	})
	s.log.Debug("aliases generated", "quantity", len(aliases), "project", req.Project)

	return aliases, nil
}

func (s *AliasService) persist(ctx context.Context, req model.AliasRequest, aliases []model.GeneratedAlias) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// History goes last: a failed call never leaves its aliases stored
	if _, err := s.repo.TouchProject(ctx, req.Project); err != nil {
		return err
	}
	if err := s.repo.SaveFormSettings(ctx, model.FormSettings{
		Environment: req.Environment,
		Quantity:    req.Quantity,
		IncludeDate: req.IncludeDate,
	}); err != nil {
		return err
	}
	_, err := s.repo.PrependAliases(ctx, aliases)
	return err
}

// History returns stored aliases, newest first
func (s *AliasService) History(ctx context.Context) ([]model.GeneratedAlias, error) {
	return s.repo.ListAliases(ctx)
}

// FindAlias returns the stored alias with the given ID
func (s *AliasService) FindAlias(ctx context.Context, id string) (model.GeneratedAlias, error) {
	aliases, err := s.repo.ListAliases(ctx)
	if err != nil {
		return model.GeneratedAlias{}, err
	}
	for _, a := range aliases {
		if a.ID == id {
			return a, nil
		}
	}
	return model.GeneratedAlias{}, ErrAliasNotFound
}

// ClearHistory deletes every stored alias
func (s *AliasService) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	err := s.repo.ClearAliases(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.sink.Capture(ctx, analytics.EventAliasesCleared, nil)
	return nil
}

// Export writes the history to w and returns the number of aliases written
func (s *AliasService) Export(ctx context.Context, w io.Writer, format string) (int, error) {
	if format != export.FormatCSV && format != export.FormatJSON {
		return 0, fmt.Errorf("%w: %q", export.ErrUnsupportedFormat, format)
	}

	aliases, err := s.repo.ListAliases(ctx)
	if err != nil {
		return 0, err
	}
	if err := export.Write(w, format, aliases); err != nil {
		return 0, err
	}

	s.sink.Capture(ctx, analytics.EventAliasesExported, map[string]any{
		"format": format,
		"count":  len(aliases),
	})
	return len(aliases), nil
}

// ExportFilename names an export file created now
func (s *AliasService) ExportFilename(format string) string {
	return export.Filename(format, s.now())
}

func (s *AliasService) FormSettings(ctx context.Context) (model.FormSettings, error) {
	return s.repo.FormSettings(ctx)
}

func (s *AliasService) UpdateFormSettings(ctx context.Context, settings model.FormSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.SaveFormSettings(ctx, settings)
}

func (s *AliasService) RecentProjects(ctx context.Context) ([]string, error) {
	return s.repo.RecentProjects(ctx)
}

// RemainingChars reports how many suffix characters fit for baseEmail
func (s *AliasService) RemainingChars(baseEmail string) (int, error) {
	if msg, ok := s.validator.ValidateBaseEmail(baseEmail); !ok {
		return 0, &ValidationError{Fields: model.FieldErrors{model.FieldBaseEmail: msg}}
	}
	return alias.GetRemainingChars(baseEmail), nil
}

// ClearForm records that the user reset the generation form
func (s *AliasService) ClearForm(ctx context.Context) {
	s.sink.Capture(ctx, analytics.EventFormCleared, nil)
}

// RecordCopy records a clipboard copy of one ("individual") or all aliases
func (s *AliasService) RecordCopy(ctx context.Context, kind string, count int) {
	props := map[string]any{"type": kind}
	if kind == "all" {
		props["count"] = count
	}
	s.sink.Capture(ctx, analytics.EventAliasCopied, props)
}

// ShareURL builds a share link for platform pointing at the app
func (s *AliasService) ShareURL(ctx context.Context, platform string) (string, error) {
	link, err := share.URL(platform, s.baseURL)
	if err != nil {
		return "", err
	}
	s.sink.Capture(ctx, analytics.EventShareClicked, map[string]any{"platform": platform})
	return link, nil
}

// environmentLabel keeps metric label cardinality bounded
func environmentLabel(env string) string {
	for _, known := range model.Environments {
		if known.Value == env {
			return env
		}
	}
	return "other"
}
