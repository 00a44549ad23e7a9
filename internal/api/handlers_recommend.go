// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package api

import (
	"net/http"

	"github.com/tomtom215/foodrec/internal/logging"
	"github.com/tomtom215/foodrec/internal/models"
)

// Recommend handles GET /recommend/{user_id}.
//
// Blank or whitespace-only ids are rejected before the engine is consulted.
// Unknown users get the popularity list; an empty catalog yields an empty list.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, err := pathParam(r, "user_id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	topN, err := h.topNParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	req := models.RecommendRequest{UserID: userID, TopN: topN}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	res, err := h.recommender.Recommend(r.Context(), req.UserID, req.TopN)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	recs := items(res)
	logging.Ctx(r.Context()).Debug().
		Str("user_id", sanitizeLogValue(req.UserID)).
		Str("branch", res.Branch.String()).
		Int("count", len(recs)).
		Msg("recommendations served")

	writeJSON(w, http.StatusOK, models.RecommendResponse{
		UserID:          req.UserID,
		Recommendations: recs,
		Count:           len(recs),
	})
}

// Similar handles GET /similar/{food_id}.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	foodID, err := pathParam(r, "food_id")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	topN, err := h.topNParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	req := models.SimilarRequest{FoodID: foodID, TopN: topN}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	res, err := h.recommender.SimilarItems(r.Context(), req.FoodID, req.TopN)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	similar := items(res)
	writeJSON(w, http.StatusOK, models.SimilarResponse{
		FoodID:  req.FoodID,
		Similar: similar,
		Count:   len(similar),
	})
}

// Popular handles GET /popular.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	topN, err := h.topNParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	req := models.PopularRequest{TopN: topN}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	res, err := h.recommender.Popular(r.Context(), req.TopN)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	recs := items(res)
	writeJSON(w, http.StatusOK, models.PopularResponse{
		Recommendations: recs,
		Count:           len(recs),
	})
}
