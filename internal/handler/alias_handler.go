package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darkodi/alias-buddy/internal/errors"
	"github.com/darkodi/alias-buddy/internal/export"
	"github.com/darkodi/alias-buddy/internal/logger"
	"github.com/darkodi/alias-buddy/internal/metrics"
	"github.com/darkodi/alias-buddy/internal/middleware"
	"github.com/darkodi/alias-buddy/internal/model"
	"github.com/darkodi/alias-buddy/internal/service"
	"github.com/darkodi/alias-buddy/internal/share"
	"github.com/darkodi/alias-buddy/internal/storage"
)

const maxBodyBytes = 1 << 20

// AliasHandler handles HTTP requests for alias operations
type AliasHandler struct {
	service  *service.AliasService
	store    storage.Store
	validate *validator.Validate
	log      *logger.Logger
}

// NewAliasHandler creates a new handler instance. store is pinged by the
// health check.
func NewAliasHandler(svc *service.AliasService, store storage.Store, log *logger.Logger) *AliasHandler {
	if log == nil {
		log = logger.Discard()
	}

	v := validator.New()
	// Report DTO failures under their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &AliasHandler{
		service:  svc,
		store:    store,
		validate: v,
		log:      log.Component("http"),
	}
}

// ============ ALIAS HANDLERS ============

// HandleValidate checks a request without generating anything
// POST /aliases/validate
func (h *AliasHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req model.AliasRequest
	if !h.decode(w, r, &req) {
		return
	}

	errs := h.service.Validate(req)
	remaining := 0
	if n, err := h.service.RemainingChars(req.BaseEmail); err == nil {
		remaining = n
	}

	writeJSON(w, http.StatusOK, model.ValidateResponse{
		Valid:     len(errs) == 0,
		Errors:    errs,
		Remaining: remaining,
	})
}

// HandleGenerate generates a batch of aliases
// POST /aliases
func (h *AliasHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.AliasRequest
	if !h.decode(w, r, &req) {
		return
	}

	aliases, err := h.service.GenerateAliases(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.GenerateResponse{Aliases: aliases})
}

// HandleHistory lists stored aliases, newest first
// GET /aliases
func (h *AliasHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	aliases, err := h.service.History(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.HistoryResponse{Aliases: aliases, Count: len(aliases)})
}

// HandleGetAlias returns one stored alias
// GET /aliases/{id}
func (h *AliasHandler) HandleGetAlias(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.FindAlias(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleClearHistory deletes every stored alias
// DELETE /aliases
func (h *AliasHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearHistory(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleExport downloads the history as a file
// GET /aliases/export?format=csv|json
func (h *AliasHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}

	// Buffer so a storage failure still produces a clean error response
	var buf bytes.Buffer
	if _, err := h.service.Export(r.Context(), &buf, format); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.service.ExportFilename(format)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// HandleCopied records a clipboard copy
// POST /aliases/copied
func (h *AliasHandler) HandleCopied(w http.ResponseWriter, r *http.Request) {
	var req model.CopiedRequest
	if !h.decode(w, r, &req) || !h.check(w, &req) {
		return
	}

	h.service.RecordCopy(r.Context(), req.Type, req.Count)
	w.WriteHeader(http.StatusNoContent)
}

// ============ SETTINGS HANDLERS ============

// HandleGetSettings returns the remembered form settings
// GET /settings
func (h *AliasHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.FormSettings(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// HandleUpdateSettings replaces the remembered form settings
// PUT /settings
func (h *AliasHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateSettingsRequest
	if !h.decode(w, r, &req) || !h.check(w, &req) {
		return
	}

	settings := model.FormSettings{
		Environment: req.Environment,
		Quantity:    req.Quantity,
		IncludeDate: *req.IncludeDate,
	}
	if err := h.service.UpdateFormSettings(r.Context(), settings); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// HandleClearForm records a form reset
// DELETE /settings/form
func (h *AliasHandler) HandleClearForm(w http.ResponseWriter, r *http.Request) {
	h.service.ClearForm(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// HandleEnvironments lists the known environment tags
// GET /environments
func (h *AliasHandler) HandleEnvironments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Environments)
}

// HandleRecentProjects lists recently used project names
// GET /projects/recent
func (h *AliasHandler) HandleRecentProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.RecentProjects(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.RecentProjectsResponse{Projects: projects})
}

// HandleRemaining reports how many suffix characters fit
// GET /remaining?email=
func (h *AliasHandler) HandleRemaining(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		errors.MissingField("email").WriteJSON(w)
		return
	}

	n, err := h.service.RemainingChars(email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.RemainingResponse{Email: email, Remaining: n})
}

// HandleShare returns a social share link
// GET /share/{platform}
func (h *AliasHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	platform := r.PathValue("platform")

	link, err := h.service.ShareURL(r.Context(), platform)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShareResponse{Platform: platform, URL: link})
}

// HandleHealth returns service health status
// GET /health
func (h *AliasHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("health check failed", "error", err.Error())
		errors.Unavailable("storage unreachable").WriteJSON(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ============ ROUTER SETUP ============

// SetupRoutes configures all HTTP routes
func (h *AliasHandler) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /aliases/validate", h.HandleValidate)
	mux.HandleFunc("POST /aliases/copied", h.HandleCopied)
	mux.HandleFunc("GET /aliases/export", h.HandleExport)
	mux.HandleFunc("POST /aliases", h.HandleGenerate)
	mux.HandleFunc("GET /aliases", h.HandleHistory)
	mux.HandleFunc("GET /aliases/{id}", h.HandleGetAlias)
	mux.HandleFunc("DELETE /aliases", h.HandleClearHistory)

	mux.HandleFunc("GET /settings", h.HandleGetSettings)
	mux.HandleFunc("PUT /settings", h.HandleUpdateSettings)
	mux.HandleFunc("DELETE /settings/form", h.HandleClearForm)

	mux.HandleFunc("GET /environments", h.HandleEnvironments)
	mux.HandleFunc("GET /projects/recent", h.HandleRecentProjects)
	mux.HandleFunc("GET /remaining", h.HandleRemaining)
	mux.HandleFunc("GET /share/{platform}", h.HandleShare)

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	return metrics.Middleware(mux)
}

// ============ HELPERS ============

// decode reads a JSON body into dst, writing a 400 on failure
func (h *AliasHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		errors.InvalidJSON(err.Error()).WriteJSON(w)
		return false
	}
	return true
}

// check applies struct tag rules to dst, writing a 422 on failure
func (h *AliasHandler) check(w http.ResponseWriter, dst any) bool {
	err := h.validate.Struct(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		errors.BadRequest(err.Error()).WriteJSON(w)
		return false
	}

	fields := make(model.FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	errors.ValidationFailed(fields).WriteJSON(w)
	return false
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// writeError maps service errors to AppErrors
func (h *AliasHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case stderrors.As(err, &verr):
		errors.ValidationFailed(verr.Fields).WriteJSON(w)
	case stderrors.Is(err, export.ErrUnsupportedFormat):
		errors.UnsupportedFormat(r.URL.Query().Get("format")).WriteJSON(w)
	case stderrors.Is(err, share.ErrUnknownPlatform):
		errors.UnknownPlatform(r.PathValue("platform")).WriteJSON(w)
	case stderrors.Is(err, service.ErrAliasNotFound):
		errors.NotFound("Alias").WriteJSON(w)
	default:
		h.log.Error("request failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		errors.StorageError().WriteJSON(w)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
