// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/foodrec/internal/models"
)

// Root handles GET /, the service health check. It always answers
// 200; ready reports whether a snapshot is loaded.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	st := h.controller.Status()
	writeJSON(w, http.StatusOK, models.RootStatus{
		Status:  "ok",
		Message: "Food Recommendation API is running",
		Ready:   st.Ready,
		Version: h.info.Version,
	})
}

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 once a snapshot is serving, 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	st := h.controller.Status()

	ready := models.ReadinessStatus{
		Ready:      st.Ready,
		Reloading:  st.Reloading,
		LastError:  st.LastError,
		DataSource: h.info.DataSource,
		Uptime:     time.Since(h.startTime).Seconds(),
	}
	if st.Snapshot != nil {
		ready.SnapshotVersion = st.Snapshot.Version
		ready.Foods = st.Snapshot.Foods
		ready.Users = st.Snapshot.Users
		ready.Interactions = st.Snapshot.Interactions
	}
	if h.info.BreakerState != nil {
		ready.BreakerState = h.info.BreakerState()
	}

	statusCode := http.StatusOK
	status := "ready"
	if !st.Ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, r, statusCode, &models.APIResponse{
		Status: status,
		Data:   ready,
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			SnapshotVersion: ready.SnapshotVersion,
		},
	})
}
