package community

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/folioworks/folioboard/internal/common"
	"github.com/folioworks/folioboard/internal/interfaces"
	"github.com/folioworks/folioboard/internal/models"
)

// Service implements interfaces.CommunityService.
type Service struct {
	storage      interfaces.StorageManager
	logger       *common.Logger
	topPositions int
}

// NewService creates a new community service. topPositions caps the
// per-row top holdings disclosed on the leaderboard.
func NewService(storage interfaces.StorageManager, logger *common.Logger, topPositions int) *Service {
	if topPositions <= 0 {
		topPositions = 5
	}
	return &Service{
		storage:      storage,
		logger:       logger,
		topPositions: topPositions,
	}
}

// GetPublicPortfolio returns the redacted projection of one user's
// portfolio. "Does not exist", "not connected", and "exists but private"
// all surface as the same ErrNotFound so callers cannot probe which users
// exist but keep their portfolios private.
func (s *Service) GetPublicPortfolio(ctx context.Context, userID string) (*models.PublicPortfolio, error) {
	snapshot, err := s.storage.PortfolioStore().GetSnapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	if !snapshot.IsPublic || !snapshot.IsConnected {
		return nil, common.ErrNotFound
	}

	user, settings, err := s.userAndSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return RedactPortfolio(user, snapshot, settings)
}

// ListPublicUsers builds one sorted, privacy-applied leaderboard page.
func (s *Service) ListPublicUsers(ctx context.Context, query models.LeaderboardQuery) (*models.LeaderboardPage, error) {
	if query.Limit <= 0 {
		return nil, common.ValidationError("limit", "must be positive")
	}
	if query.Offset < 0 {
		return nil, common.ValidationError("offset", "must not be negative")
	}

	snapshots, err := s.storage.PortfolioStore().ListPublicSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public snapshots: %w", err)
	}

	summaries := make([]models.PublicUserSummary, 0, len(snapshots))
	for _, snapshot := range snapshots {
		user, settings, err := s.userAndSettings(ctx, snapshot.UserID)
		if err != nil {
			return nil, err
		}
		summary, err := SummarizePortfolio(user, snapshot, settings, s.topPositions)
		if err != nil {
			// Ranking failures abort: a silently wrong leaderboard is
			// worse than an error.
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	sortSummaries(summaries, query.SortBy, query.SortOrder)

	total := len(summaries)
	page := pageSlice(summaries, query.Offset, query.Limit)

	// A short page signals the end; a full page means ask for the next one.
	// Total and HasMore always describe the unfiltered ranking, even when a
	// following set narrows the rows below.
	hasMore := len(page) == query.Limit

	if query.Following != nil {
		narrowed := make([]models.PublicUserSummary, 0, len(page))
		for _, summary := range page {
			if slices.Contains(query.Following, summary.UserID) {
				narrowed = append(narrowed, summary)
			}
		}
		page = narrowed
	}

	return &models.LeaderboardPage{
		Users:   page,
		Total:   total,
		HasMore: hasMore,
	}, nil
}

// GetPrivacySettings returns the owner's policy, creating the all-visible
// default on first read.
func (s *Service) GetPrivacySettings(ctx context.Context, userID string) (*models.PrivacySettings, error) {
	settings, err := s.storage.PrivacyStore().GetSettings(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return models.DefaultPrivacySettings(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdatePrivacySettings replaces the owner's policy.
func (s *Service) UpdatePrivacySettings(ctx context.Context, userID string, settings *models.PrivacySettings) error {
	if settings == nil {
		return common.ValidationError("settings", "body is required")
	}
	settings.UserID = userID
	settings.UpdatedAt = time.Now().UTC()
	if err := s.storage.PrivacyStore().SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("save privacy settings for user %s: %w", userID, err)
	}
	s.logger.Debug().Str("user_id", userID).Msg("Privacy settings updated")
	return nil
}

// Follow adds targetID to the viewer's following set.
func (s *Service) Follow(ctx context.Context, userID, targetID string) error {
	if targetID == "" {
		return common.ValidationError("user_id", "target user id is required")
	}
	if targetID == userID {
		return common.ValidationError("user_id", "cannot follow yourself")
	}
	user, err := s.getOrCreateUser(ctx, userID)
	if err != nil {
		return err
	}
	if slices.Contains(user.Following, targetID) {
		return nil
	}
	user.Following = append(user.Following, targetID)
	user.UpdatedAt = time.Now().UTC()
	return s.storage.UserStore().SaveUser(ctx, user)
}

// Unfollow removes targetID from the viewer's following set.
func (s *Service) Unfollow(ctx context.Context, userID, targetID string) error {
	user, err := s.getOrCreateUser(ctx, userID)
	if err != nil {
		return err
	}
	idx := slices.Index(user.Following, targetID)
	if idx < 0 {
		return nil
	}
	user.Following = slices.Delete(user.Following, idx, idx+1)
	user.UpdatedAt = time.Now().UTC()
	return s.storage.UserStore().SaveUser(ctx, user)
}

// GetFollowing returns the viewer's following set, empty when the profile
// does not exist yet.
func (s *Service) GetFollowing(ctx context.Context, userID string) ([]string, error) {
	user, err := s.storage.UserStore().GetUser(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user.Following, nil
}

func (s *Service) userAndSettings(ctx context.Context, userID string) (*models.User, *models.PrivacySettings, error) {
	user, err := s.storage.UserStore().GetUser(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		user = &models.User{ID: userID, DisplayName: userID}
	} else if err != nil {
		return nil, nil, err
	}

	settings, err := s.GetPrivacySettings(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, settings, nil
}

func (s *Service) getOrCreateUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.storage.UserStore().GetUser(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		now := time.Now().UTC()
		return &models.User{ID: userID, DisplayName: userID, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// sortSummaries orders leaderboard rows. The pnl_percent sort must remain
// total even when owners hide the percent: hidden values sort last under
// either direction rather than crashing or leaking the number.
func sortSummaries(summaries []models.PublicUserSummary, sortBy models.LeaderboardSortKey, order models.SortDirection) {
	asc := order == models.SortAsc

	switch sortBy {
	case models.SortByPnLPercent:
		sort.SliceStable(summaries, func(i, j int) bool {
			vi, oki := summaries[i].PnLPercent.Value()
			vj, okj := summaries[j].PnLPercent.Value()
			if oki != okj {
				return oki // hidden rows sort last regardless of direction
			}
			if !oki {
				return false
			}
			if asc {
				return vi < vj
			}
			return vi > vj
		})
	default: // updated — most recently synced first unless asc requested
		sort.SliceStable(summaries, func(i, j int) bool {
			if asc {
				return summaries[i].LastSyncedAt.Before(summaries[j].LastSyncedAt)
			}
			return summaries[i].LastSyncedAt.After(summaries[j].LastSyncedAt)
		})
	}
}

func pageSlice(summaries []models.PublicUserSummary, offset, limit int) []models.PublicUserSummary {
	if offset >= len(summaries) {
		return []models.PublicUserSummary{}
	}
	end := offset + limit
	if end > len(summaries) {
		end = len(summaries)
	}
	return summaries[offset:end]
}
