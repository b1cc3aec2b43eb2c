package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"adboard/internal/domain"
	"adboard/internal/domain/services"
	"adboard/internal/httputil"
	"adboard/internal/service/ads"
)

// ViewHandler serves the tree-browsing projections consumed by the front end
type ViewHandler struct {
	viewService services.ViewService
	logger      *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(viewService services.ViewService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		viewService: viewService,
		logger:      logger,
	}
}

// DefaultFolderView redirects to the active root folder's view, or returns a
// fixed 404 message when no active root exists.
// GET /api/folder_ad
func (h *ViewHandler) DefaultFolderView(w http.ResponseWriter, r *http.Request) {
	rootID, err := h.viewService.DefaultRootID(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, ads.MsgRootFolderDoesntExist, http.StatusNotFound)
			return
		}
		handleError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/api/folder_ad/%s", rootID), http.StatusFound)
}

// FolderView returns one folder with its immediate active children and ads
// GET /api/folder_ad/{id}
func (h *ViewHandler) FolderView(w http.ResponseWriter, r *http.Request) {
	contents, err := h.viewService.FolderView(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *ViewHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
