package repository

import (
	"context"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
)

type CreateRatingInput struct {
	SessionID    int64
	RaterID      int64
	RateeID      int64
	LikeStatus   bool
	FeedbackText *string
}

type RatingRepository struct {
	db DBTX
}

func NewRatingRepository(db DBTX) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create relies on the unique index on session_id; a duplicate rating
// surfaces as a pgconn unique-violation error.
func (r *RatingRepository) Create(
	ctx context.Context,
	input CreateRatingInput,
) (*models.Rating, error) {
	query := `
		INSERT INTO ratings (session_id, rater_id, ratee_id, like_status, feedback_text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, session_id, rater_id, ratee_id, like_status, feedback_text, created_at
	`

	var rating models.Rating
	err := r.db.QueryRow(
		ctx,
		query,
		input.SessionID,
		input.RaterID,
		input.RateeID,
		input.LikeStatus,
		input.FeedbackText,
	).Scan(
		&rating.ID,
		&rating.SessionID,
		&rating.RaterID,
		&rating.RateeID,
		&rating.LikeStatus,
		&rating.FeedbackText,
		&rating.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) GetBySessionID(ctx context.Context, sessionID int64) (*models.Rating, error) {
	query := `
		SELECT id, session_id, rater_id, ratee_id, like_status, feedback_text, created_at
		FROM ratings
		WHERE session_id = $1
	`
	var rating models.Rating
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&rating.ID,
		&rating.SessionID,
		&rating.RaterID,
		&rating.RateeID,
		&rating.LikeStatus,
		&rating.FeedbackText,
		&rating.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// SummaryForUser aggregates ratings received by a user. COALESCE keeps
// the result zero-valued when the user has no ratings.
func (r *RatingRepository) SummaryForUser(
	ctx context.Context,
	userID int64,
) (*models.RatingSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN like_status THEN 1 ELSE 0 END), 0)
		FROM ratings
		WHERE ratee_id = $1
	`
	var summary models.RatingSummary
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&summary.TotalRatingsReceived,
		&summary.TotalLikes,
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// TopRated is the like-count leaderboard behind the top-tutors listing.
func (r *RatingRepository) TopRated(ctx context.Context, limit int) ([]models.TopTutor, error) {
	query := `
		SELECT
			u.id,
			u.display_name,
			u.bio,
			COUNT(r.id),
			SUM(CASE WHEN r.like_status THEN 1 ELSE 0 END)
		FROM ratings r
		JOIN users u ON u.id = r.ratee_id
		GROUP BY u.id, u.display_name, u.bio
		ORDER BY SUM(CASE WHEN r.like_status THEN 1 ELSE 0 END) DESC, COUNT(r.id) DESC, u.id ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tutors := make([]models.TopTutor, 0)
	for rows.Next() {
		var tutor models.TopTutor
		if err := rows.Scan(
			&tutor.User.ID,
			&tutor.User.DisplayName,
			&tutor.User.Bio,
			&tutor.TotalRatings,
			&tutor.TotalLikes,
		); err != nil {
			return nil, err
		}
		tutors = append(tutors, tutor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tutors, nil
}
