package models

import "time"

// Session status values are stored as these exact literal strings; the
// stored data predates this service and must keep reading back.
const (
	SessionStatusRequested = "Requested"
	SessionStatusConfirmed = "Confirmed"
	SessionStatusDenied    = "Denied"
	SessionStatusCancelled = "Cancelled"
	SessionStatusCompleted = "Completed"
)

const (
	LocationOnline   = "Online"
	LocationInPerson = "InPerson"
)

type Session struct {
	ID                 int64     `json:"id"`
	ProviderID         int64     `json:"provider_id"`
	RequesterID        int64     `json:"requester_id"`
	SkillID            int64     `json:"skill_id"`
	SessionDateTime    time.Time `json:"session_date_time"`
	LocationType       string    `json:"location_type"`
	Status             string    `json:"status"`
	MeetingURL         *string   `json:"meeting_url"`
	CancellationReason *string   `json:"cancellation_reason"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Terminal reports whether no further status transition is legal.
func (s *Session) Terminal() bool {
	switch s.Status {
	case SessionStatusDenied, SessionStatusCancelled, SessionStatusCompleted:
		return true
	}
	return false
}

// Participant reports whether userID is one of the two parties.
func (s *Session) Participant(userID int64) bool {
	return s.ProviderID == userID || s.RequesterID == userID
}

type SessionDetail struct {
	Session
	Rating *Rating `json:"rating,omitempty"`
}
