package handler

import (
	"log/slog"
	"net/http"

	"adboard/internal/domain/services"
	"adboard/internal/httputil"
)

// AdHandler handles ad HTTP requests
type AdHandler struct {
	adService   services.AdService
	viewService services.ViewService
	logger      *slog.Logger
}

// NewAdHandler creates a new ad handler
func NewAdHandler(adService services.AdService, viewService services.ViewService, logger *slog.Logger) *AdHandler {
	return &AdHandler{
		adService:   adService,
		viewService: viewService,
		logger:      logger,
	}
}

// ListAds lists all active ads
// GET /api/ads
func (h *AdHandler) ListAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.viewService.ListActiveAds(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ads)
}

// CreateAd creates a new ad
// POST /api/ads
func (h *AdHandler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var req services.CreateAdRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ad, err := h.adService.CreateAd(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, ad)
}

// GetAd retrieves an active ad by id
// GET /api/ads/{id}
func (h *AdHandler) GetAd(w http.ResponseWriter, r *http.Request) {
	ad, err := h.adService.GetAd(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ad)
}

// UpdateAd applies a partial update to an active ad
// PATCH /api/ads/{id}
func (h *AdHandler) UpdateAd(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateAdRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ad, err := h.adService.UpdateAd(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ad)
}

// DeleteAd deactivates a single ad
// DELETE /api/ads/{id}
func (h *AdHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	if err := h.adService.DeactivateAd(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
