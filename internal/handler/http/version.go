package http

import (
	"net/http"

	"github.com/MKhiriev/go-bookshelf/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	buildInfo := h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteJSON(w, buildInfo, http.StatusOK)
}
