package models

import "time"

const (
	ReportStatusOpen      = "open"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report is a user-filed complaint about another user, reviewed through
// the admin panel.
type Report struct {
	ID             int64      `json:"id"`
	ReporterID     int64      `json:"reporter_id"`
	ReportedUserID int64      `json:"reported_user_id"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	ResolvedBy     *int64     `json:"resolved_by"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	CreatedAt      time.Time  `json:"created_at"`
}
