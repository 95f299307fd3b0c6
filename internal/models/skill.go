package models

import "time"

const (
	SkillKindOffered = "offered"
	SkillKindSought  = "sought"
)

type Skill struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSkill links a user to a catalog skill as either something they
// teach (offered) or something they want to learn (sought).
type UserSkill struct {
	UserID  int64  `json:"user_id"`
	SkillID int64  `json:"skill_id"`
	Kind    string `json:"kind"`
	Skill   *Skill `json:"skill,omitempty"`
}

type UserSkillLists struct {
	Offered []Skill `json:"offered"`
	Sought  []Skill `json:"sought"`
}

// TutorListing is one provider row in search results: the user plus the
// offered skill that matched and their rating totals.
type TutorListing struct {
	User         PublicUser `json:"user"`
	Skill        Skill      `json:"skill"`
	TotalRatings int        `json:"total_ratings_received"`
	TotalLikes   int        `json:"total_likes"`
}

// TopTutor is one row of the like-count leaderboard.
type TopTutor struct {
	User         PublicUser `json:"user"`
	TotalRatings int        `json:"total_ratings_received"`
	TotalLikes   int        `json:"total_likes"`
}
