// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/foodrec/internal/logging"
	"github.com/tomtom215/foodrec/internal/models"
)

// Reload handles POST /reload-data.
//
// The rebuild runs detached from the request context so that a client
// disconnect does not abort it; the engine's build timeout still applies.
// On failure the previous snapshot keeps serving.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())

	stats, err := h.controller.Reload(ctx)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Uint64("version", stats.Version).
		Int("foods", stats.Foods).
		Int("users", stats.Users).
		Int("interactions", stats.Interactions).
		Msg("data reloaded via API")

	writeJSON(w, http.StatusOK, models.ReloadResponse{
		Message:      "Data reloaded successfully",
		Version:      stats.Version,
		Foods:        stats.Foods,
		Users:        stats.Users,
		Interactions: stats.Interactions,
		BuiltAt:      stats.BuiltAt,
		DurationMS:   stats.BuildDurationMS,
	})
}
