package server

import (
	"net/http"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
)

// handlePrivacy handles GET and PUT /api/privacy — the owner's disclosure
// policy. GET returns all-visible defaults before the first write.
func (s *Server) handlePrivacy(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut) {
		return
	}

	userID, err := common.RequireUserID(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		settings, err := s.app.CommunityService.GetPrivacySettings(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, settings)
		return
	}

	var settings models.PrivacySettings
	if !DecodeJSON(w, r, &settings) {
		return
	}

	if err := s.app.CommunityService.UpdatePrivacySettings(r.Context(), userID, &settings); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, settings)
}
