package server

import (
	"net/http"
	"strconv"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/models"
)

// handleSentimentStocks handles GET /api/sentiment/stocks — one logical
// page of the bullish or bearish trending ranking. Query params:
// sentiment, page, page_size, sort_by, sort_order, q.
func (s *Server) handleSentimentStocks(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()

	sentiment := models.SentimentBucket(q.Get("sentiment"))

	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteServiceError(w, common.ValidationError("page", "must be an integer"))
			return
		}
		page = n
	}

	pageSize := s.app.Config.Sentiment.DefaultPageSize
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteServiceError(w, common.ValidationError("page_size", "must be an integer"))
			return
		}
		pageSize = n
	}
	if pageSize > s.app.Config.Sentiment.MaxPageSize {
		pageSize = s.app.Config.Sentiment.MaxPageSize
	}

	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = models.TrendingSortDefault
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

	result, err := s.app.SentimentService.ListSentimentStocks(r.Context(), models.SentimentQuery{
		Sentiment: sentiment,
		Page:      page,
		PageSize:  pageSize,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Query:     q.Get("q"),
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
