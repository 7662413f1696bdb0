package server

import (
	"net/http"
	"strconv"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
)

// --- Community handlers ---

// handleCommunityUsers handles GET /api/community/users — one leaderboard
// page. Query params: limit, offset, sort_by (updated|pnl_percent),
// sort_order (asc|desc), following (true narrows to the viewer's set).
func (s *Server) handleCommunityUsers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()

	limit := s.app.Config.Community.DefaultPageSize
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteServiceError(w, common.ValidationError("limit", "must be an integer"))
			return
		}
		limit = n
	}
	if limit > s.app.Config.Community.MaxPageSize {
		limit = s.app.Config.Community.MaxPageSize
	}

	offset := 0
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteServiceError(w, common.ValidationError("offset", "must be an integer"))
			return
		}
		offset = n
	}

	sortBy := models.SortByUpdated
	if v := q.Get("sort_by"); v != "" {
		switch models.LeaderboardSortKey(v) {
		case models.SortByUpdated, models.SortByPnLPercent:
			sortBy = models.LeaderboardSortKey(v)
		default:
			WriteServiceError(w, common.ValidationError("sort_by", "must be updated or pnl_percent"))
			return
		}
	}

	sortOrder := models.SortDesc
	if v := q.Get("sort_order"); v != "" {
		switch models.SortDirection(v) {
		case models.SortAsc, models.SortDesc:
			sortOrder = models.SortDirection(v)
		default:
			WriteServiceError(w, common.ValidationError("sort_order", "must be asc or desc"))
			return
		}
	}

	query := models.LeaderboardQuery{
		Limit:     limit,
		Offset:    offset,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}

	// The following narrowing is viewer-scoped, so it needs an identity;
	// without one the flag is a validation error, not a silent no-op.
	if q.Get("following") == "true" {
		userID, err := common.RequireUserID(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		following, err := s.app.CommunityService.GetFollowing(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		if following == nil {
			following = []string{}
		}
		query.Following = following
	}

	page, err := s.app.CommunityService.ListPublicUsers(r.Context(), query)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, page)
}

// handlePublicPortfolio handles GET /api/community/users/{user_id} — the
// redacted public view, or a uniform 404 for missing and private alike.
func (s *Server) handlePublicPortfolio(w http.ResponseWriter, r *http.Request, userID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	view, err := s.app.CommunityService.GetPublicPortfolio(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, view)
}

// handleFollowTarget handles PUT and DELETE /api/community/following/{user_id}.
func (s *Server) handleFollowTarget(w http.ResponseWriter, r *http.Request, targetID string) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodDelete) {
		return
	}

	userID, err := common.RequireUserID(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if r.Method == http.MethodPut {
		err = s.app.CommunityService.Follow(r.Context(), userID, targetID)
	} else {
		err = s.app.CommunityService.Unfollow(r.Context(), userID, targetID)
	}
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
