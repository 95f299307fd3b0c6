package models

import "time"

// Rating is the single like/dislike one participant leaves about the
// other after a session completes. At most one per session.
type Rating struct {
	ID           int64     `json:"id"`
	SessionID    int64     `json:"session_id"`
	RaterID      int64     `json:"rater_id"`
	RateeID      int64     `json:"ratee_id"`
	LikeStatus   bool      `json:"like_status"`
	FeedbackText *string   `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type RatingSummary struct {
	TotalRatingsReceived int `json:"totalRatingsReceived"`
	TotalLikes           int `json:"totalLikes"`
}
