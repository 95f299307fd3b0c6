package services

import (
	"context"
	"strings"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
)

const defaultTopTutorLimit = 10

type tutorSearcher interface {
	SearchProviders(ctx context.Context, term string, excludeUserID int64) ([]models.TutorListing, error)
	MatchesForUser(ctx context.Context, userID int64) ([]models.TutorListing, error)
}

type topRatedReader interface {
	TopRated(ctx context.Context, limit int) ([]models.TopTutor, error)
}

type DiscoveryService struct {
	skillRepo  tutorSearcher
	ratingRepo topRatedReader
}

func NewDiscoveryService(skillRepo tutorSearcher, ratingRepo topRatedReader) *DiscoveryService {
	return &DiscoveryService{
		skillRepo:  skillRepo,
		ratingRepo: ratingRepo,
	}
}

// SearchTutors finds providers whose offered skill names match the
// term. The searching user is excluded from their own results.
func (s *DiscoveryService) SearchTutors(
	ctx context.Context,
	actorID int64,
	term string,
) ([]models.TutorListing, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrInvalidInput
	}
	return s.skillRepo.SearchProviders(ctx, term, actorID)
}

// GetMatches pairs the user's sought skills with other users' offered
// skills.
func (s *DiscoveryService) GetMatches(
	ctx context.Context,
	actorID int64,
) ([]models.TutorListing, error) {
	return s.skillRepo.MatchesForUser(ctx, actorID)
}

func (s *DiscoveryService) GetTopTutors(
	ctx context.Context,
	limit int,
) ([]models.TopTutor, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultTopTutorLimit
	}
	return s.ratingRepo.TopRated(ctx, limit)
}
