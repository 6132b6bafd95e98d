package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/api/response"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      Pinger
	storage Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db, storage Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		storage: storage,
		version: version,
	}
}

type dependencyStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status   string           `json:"status"`
	Version  string           `json:"version"`
	Database dependencyStatus `json:"database"`
	Storage  dependencyStatus `json:"storage"`
}

// ServeHTTP handles the health check request. It always answers 200; a
// failed dependency turns the status to "degraded".
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	data := healthData{
		Status:   "healthy",
		Version:  h.version,
		Database: dependencyStatus{Connected: ping(r.Context(), "database", h.db)},
		Storage:  dependencyStatus{Connected: ping(r.Context(), "storage", h.storage)},
	}
	if !data.Database.Connected || !data.Storage.Connected {
		data.Status = "degraded"
	}

	response.Success(w, http.StatusOK, data, requestID)
}

func ping(ctx context.Context, name string, p Pinger) bool {
	if p == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		slog.Warn("health check failed", "dependency", name, "error", err)
		return false
	}
	return true
}
