package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is the part of *mongo.Client the health check uses.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

var _ Pinger = (*mongo.Client)(nil)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client Pinger
	Mounts *propertypicker.Registry
	Log    *zap.Logger
}

// NewHandler constructs a health Handler. mounts may be nil.
func NewHandler(client Pinger, mounts *propertypicker.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Mounts: mounts,
		Log:    logger,
	}
}

type healthResponse struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	ActiveMounts int    `json:"active_mounts"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "active_mounts":3 }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}
	if h.Mounts != nil {
		resp.ActiveMounts = h.Mounts.Len()
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
