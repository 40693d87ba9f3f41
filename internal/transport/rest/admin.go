package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/nameindex"
	"github.com/heartmarshall/namematch-backend/internal/service/indexing"
	"github.com/heartmarshall/namematch-backend/pkg/ctxutil"
)

type indexAdmin interface {
	Reload(ctx context.Context, reason string) (nameindex.Stats, error)
	Stats() (nameindex.Stats, error)
}

type datasetStore interface {
	Count(ctx context.Context) (int, error)
	LatestImport(ctx context.Context) (*domain.DatasetImport, error)
}

// AdminHandler serves admin REST endpoints. Routes are mounted behind
// middleware.RequireAdmin.
type AdminHandler struct {
	index   indexAdmin
	dataset datasetStore
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler. dataset may be nil when the index
// is built from a file; stats then carry no dataset section.
func NewAdminHandler(index indexAdmin, dataset datasetStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		index:   index,
		dataset: dataset,
		log:     logger.With("handler", "admin"),
	}
}

type statsResponse struct {
	nameindex.Stats
	Dataset *datasetStatus `json:"dataset,omitempty"`
}

type datasetStatus struct {
	StoredNames int                   `json:"storedNames"`
	LastImport  *domain.DatasetImport `json:"lastImport"`
	Error       string                `json:"error,omitempty"`
}

// Reload rebuilds the name index from its source and returns the new stats.
// POST /admin/index/reload
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	subject, _ := ctxutil.AdminSubjectFromCtx(r.Context())
	h.log.InfoContext(r.Context(), "index reload requested", slog.String("admin", subject))

	stats, err := h.index.Reload(r.Context(), indexing.ReasonAdmin)
	if err != nil {
		h.log.ErrorContext(r.Context(), "index reload", slog.String("error", err.Error()))
		if errors.Is(err, indexing.ErrEmptyDataset) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "index reload failed")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Stats returns statistics of the active index snapshot.
// GET /admin/index/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.index.Stats()
	if errors.Is(err, domain.ErrIndexUnavailable) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "index stats", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{Stats: stats, Dataset: h.datasetStatus(r.Context())})
}

// datasetStatus reports the stored dataset next to the in-memory index so a
// stale index is visible. A failing store is reported in the body.
func (h *AdminHandler) datasetStatus(ctx context.Context) *datasetStatus {
	if h.dataset == nil {
		return nil
	}

	var ds datasetStatus
	n, err := h.dataset.Count(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "dataset count", slog.String("error", err.Error()))
		ds.Error = "dataset unavailable"
		return &ds
	}
	ds.StoredNames = n

	imp, err := h.dataset.LatestImport(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		h.log.ErrorContext(ctx, "latest dataset import", slog.String("error", err.Error()))
		ds.Error = "dataset unavailable"
	default:
		ds.LastImport = imp
	}
	return &ds
}
