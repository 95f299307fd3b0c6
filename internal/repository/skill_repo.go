package repository

import (
	"context"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
)

type SkillRepository struct {
	db DBTX
}

func NewSkillRepository(db DBTX) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) ListAll(ctx context.Context) ([]models.Skill, error) {
	query := `
		SELECT id, name, category, created_at
		FROM skills
		ORDER BY name ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]models.Skill, 0)
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Category, &skill.CreatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}

func (r *SkillRepository) GetByID(ctx context.Context, skillID int64) (*models.Skill, error) {
	query := `
		SELECT id, name, category, created_at
		FROM skills
		WHERE id = $1
	`
	var skill models.Skill
	err := r.db.QueryRow(ctx, query, skillID).Scan(
		&skill.ID,
		&skill.Name,
		&skill.Category,
		&skill.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// ListForUser returns the user's skills of one kind (offered or sought)
// joined with the catalog rows.
func (r *SkillRepository) ListForUser(
	ctx context.Context,
	userID int64,
	kind string,
) ([]models.Skill, error) {
	query := `
		SELECT s.id, s.name, s.category, s.created_at
		FROM user_skills us
		JOIN skills s ON s.id = us.skill_id
		WHERE us.user_id = $1 AND us.kind = $2
		ORDER BY s.name ASC, s.id ASC
	`

	rows, err := r.db.Query(ctx, query, userID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]models.Skill, 0)
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Category, &skill.CreatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}

// DeleteForUser removes every row of one kind for a user. Used together
// with InsertForUser inside a transaction to bulk-replace a list.
func (r *SkillRepository) DeleteForUser(ctx context.Context, userID int64, kind string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM user_skills
		WHERE user_id = $1 AND kind = $2
	`, userID, kind)
	return err
}

func (r *SkillRepository) InsertForUser(
	ctx context.Context,
	userID int64,
	kind string,
	skillIDs []int64,
) error {
	for _, skillID := range skillIDs {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO user_skills (user_id, skill_id, kind)
			VALUES ($1, $2, $3)
		`, userID, skillID, kind); err != nil {
			return err
		}
	}
	return nil
}

// UserOffersSkill reports whether the user has the skill in their
// offered list. Session requests must target an offered skill.
func (r *SkillRepository) UserOffersSkill(
	ctx context.Context,
	userID int64,
	skillID int64,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM user_skills
			WHERE user_id = $1 AND skill_id = $2 AND kind = 'offered'
		)
	`
	var offers bool
	if err := r.db.QueryRow(ctx, query, userID, skillID).Scan(&offers); err != nil {
		return false, err
	}
	return offers, nil
}

// SearchProviders finds users offering a skill whose name matches the
// term, with their rating totals attached.
func (r *SkillRepository) SearchProviders(
	ctx context.Context,
	term string,
	excludeUserID int64,
) ([]models.TutorListing, error) {
	query := `
		SELECT
			u.id,
			u.display_name,
			u.bio,
			s.id,
			s.name,
			s.category,
			s.created_at,
			COALESCE(rt.total_ratings, 0),
			COALESCE(rt.total_likes, 0)
		FROM user_skills us
		JOIN users u ON u.id = us.user_id
		JOIN skills s ON s.id = us.skill_id
		LEFT JOIN LATERAL (
			SELECT
				COUNT(*) AS total_ratings,
				SUM(CASE WHEN like_status THEN 1 ELSE 0 END) AS total_likes
			FROM ratings
			WHERE ratee_id = u.id
		) rt ON TRUE
		WHERE us.kind = 'offered'
		  AND s.name ILIKE '%' || $1 || '%'
		  AND u.id <> $2
		ORDER BY COALESCE(rt.total_likes, 0) DESC, u.id ASC
	`

	rows, err := r.db.Query(ctx, query, term, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]models.TutorListing, 0)
	for rows.Next() {
		var listing models.TutorListing
		if err := rows.Scan(
			&listing.User.ID,
			&listing.User.DisplayName,
			&listing.User.Bio,
			&listing.Skill.ID,
			&listing.Skill.Name,
			&listing.Skill.Category,
			&listing.Skill.CreatedAt,
			&listing.TotalRatings,
			&listing.TotalLikes,
		); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}

// MatchesForUser joins the user's sought skills against other users'
// offered skills.
func (r *SkillRepository) MatchesForUser(
	ctx context.Context,
	userID int64,
) ([]models.TutorListing, error) {
	query := `
		SELECT
			u.id,
			u.display_name,
			u.bio,
			s.id,
			s.name,
			s.category,
			s.created_at,
			COALESCE(rt.total_ratings, 0),
			COALESCE(rt.total_likes, 0)
		FROM user_skills sought
		JOIN user_skills offered
			ON offered.skill_id = sought.skill_id
			AND offered.kind = 'offered'
			AND offered.user_id <> sought.user_id
		JOIN users u ON u.id = offered.user_id
		JOIN skills s ON s.id = offered.skill_id
		LEFT JOIN LATERAL (
			SELECT
				COUNT(*) AS total_ratings,
				SUM(CASE WHEN like_status THEN 1 ELSE 0 END) AS total_likes
			FROM ratings
			WHERE ratee_id = u.id
		) rt ON TRUE
		WHERE sought.user_id = $1 AND sought.kind = 'sought'
		ORDER BY s.name ASC, COALESCE(rt.total_likes, 0) DESC, u.id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]models.TutorListing, 0)
	for rows.Next() {
		var listing models.TutorListing
		if err := rows.Scan(
			&listing.User.ID,
			&listing.User.DisplayName,
			&listing.User.Bio,
			&listing.Skill.ID,
			&listing.Skill.Name,
			&listing.Skill.Category,
			&listing.Skill.CreatedAt,
			&listing.TotalRatings,
			&listing.TotalLikes,
		); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}
