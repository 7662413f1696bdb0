package server

import (
	"net/http"

	"github.com/folioworks/folioboard/internal/common"
)

// --- Owner portfolio handlers ---

// handleOwnerPortfolio handles GET /api/portfolio — the full, unredacted
// owner view. The redactor is bypassed for the owner.
func (s *Server) handleOwnerPortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID, err := common.RequireUserID(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	view, err := s.app.PortfolioService.GetOwnerPortfolio(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, view)
}

// handlePortfolioSync handles POST /api/portfolio/sync — pull the full
// position set from the brokerage provider and replace the stored snapshot.
func (s *Server) handlePortfolioSync(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	userID, err := common.RequireUserID(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	view, err := s.app.PortfolioService.Sync(r.Context(), userID)
	if err != nil {
		s.logger.Error().Str("user_id", userID).Err(err).Msg("Portfolio sync failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, view)
}

// handlePortfolioSharing handles PUT /api/portfolio/sharing — toggle
// leaderboard participation.
func (s *Server) handlePortfolioSharing(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	userID, err := common.RequireUserID(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req struct {
		IsPublic bool `json:"is_public"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := s.app.PortfolioService.SetPublic(r.Context(), userID, req.IsPublic); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"is_public": req.IsPublic})
}

// handlePortfolioConnection handles DELETE /api/portfolio/connection —
// remove the brokerage connection and its snapshot.
func (s *Server) handlePortfolioConnection(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	userID, err := common.RequireUserID(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := s.app.PortfolioService.Disconnect(r.Context(), userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
