package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/darkodi/alias-buddy/internal/logger"
	"github.com/darkodi/alias-buddy/internal/model"
	"github.com/darkodi/alias-buddy/internal/storage"
)

// Storage keys
const (
	KeyGeneratedAliases = "alias-buddy-generated-emails"
	KeyFormSettings     = "alias-buddy-form-settings"
	KeyRecentProjects   = "alias-buddy-recent-projects"
)

const (
	// MaxHistory is the number of aliases kept; older ones are evicted
	MaxHistory = 1000
	// MaxRecentProjects is the length of the recent-project list
	MaxRecentProjects = 10
)

// AliasRepository stores alias history and generation preferences as JSON
// documents in a key-value store. It does no locking of its own; callers
// serialize read-modify-write sequences.
type AliasRepository struct {
	store storage.Store
	log   *logger.Logger
}

func NewAliasRepository(store storage.Store, log *logger.Logger) *AliasRepository {
	if log == nil {
		log = logger.Discard()
	}
	return &AliasRepository{store: store, log: log}
}

// ListAliases returns the stored history, newest first
func (r *AliasRepository) ListAliases(ctx context.Context) ([]model.GeneratedAlias, error) {
	return load(ctx, r, KeyGeneratedAliases, []model.GeneratedAlias{})
}

// PrependAliases puts fresh aliases in front of the history and trims it
// to MaxHistory entries.
func (r *AliasRepository) PrependAliases(ctx context.Context, fresh []model.GeneratedAlias) ([]model.GeneratedAlias, error) {
	existing, err := r.ListAliases(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]model.GeneratedAlias, 0, len(fresh)+len(existing))
	updated = append(updated, fresh...)
	updated = append(updated, existing...)
	if len(updated) > MaxHistory {
		updated = updated[:MaxHistory]
	}

	if err := r.save(ctx, KeyGeneratedAliases, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ClearAliases removes the whole history
func (r *AliasRepository) ClearAliases(ctx context.Context) error {
	return r.store.Delete(ctx, KeyGeneratedAliases)
}

// FormSettings returns the saved preferences or the defaults
func (r *AliasRepository) FormSettings(ctx context.Context) (model.FormSettings, error) {
	return load(ctx, r, KeyFormSettings, model.DefaultFormSettings())
}

func (r *AliasRepository) SaveFormSettings(ctx context.Context, settings model.FormSettings) error {
	return r.save(ctx, KeyFormSettings, settings)
}

// RecentProjects returns project names, most recently used first
func (r *AliasRepository) RecentProjects(ctx context.Context) ([]string, error) {
	return load(ctx, r, KeyRecentProjects, []string{})
}

// TouchProject moves project to the front of the recent list
func (r *AliasRepository) TouchProject(ctx context.Context, project string) ([]string, error) {
	existing, err := r.RecentProjects(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]string, 0, MaxRecentProjects)
	updated = append(updated, project)
	for _, p := range existing {
		if p != project && len(updated) < MaxRecentProjects {
			updated = append(updated, p)
		}
	}

	if err := r.save(ctx, KeyRecentProjects, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// load decodes the value stored under key. A missing key yields fallback;
// so does undecodable data, which is logged.
func load[T any](ctx context.Context, r *AliasRepository, key string, fallback T) (T, error) {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("read %s: %w", key, err)
	}

	// fields missing from the stored document keep their fallback values
	value := fallback
	if err := json.Unmarshal(raw, &value); err != nil {
		r.log.Warn("ignoring unreadable stored value", "key", key, "error", err.Error())
		return fallback, nil
	}
	return value, nil
}

func (r *AliasRepository) save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
