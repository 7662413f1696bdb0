package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Owner portfolio
	mux.HandleFunc("/api/portfolio", s.handleOwnerPortfolio)
	mux.HandleFunc("/api/portfolio/sync", s.handlePortfolioSync)
	mux.HandleFunc("/api/portfolio/sharing", s.handlePortfolioSharing)
	mux.HandleFunc("/api/portfolio/connection", s.handlePortfolioConnection)

	// Privacy
	mux.HandleFunc("/api/privacy", s.handlePrivacy)

	// Community
	mux.HandleFunc("/api/community/users", s.handleCommunityUsers)
	mux.HandleFunc("/api/community/users/", s.handleCommunityUser)
	mux.HandleFunc("/api/community/following/", s.handleFollowing)

	// Sentiment rankings
	mux.HandleFunc("/api/sentiment/stocks", s.handleSentimentStocks)
}

// handleCommunityUser dispatches /api/community/users/{user_id}.
func (s *Server) handleCommunityUser(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/community/users/")
	if userID == "" || strings.Contains(userID, "/") {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}
	s.handlePublicPortfolio(w, r, userID)
}

// handleFollowing dispatches /api/community/following/{user_id}.
func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	targetID := strings.TrimPrefix(r.URL.Path, "/api/community/following/")
	if targetID == "" || strings.Contains(targetID, "/") {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}
	s.handleFollowTarget(w, r, targetID)
}
