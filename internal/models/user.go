package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Bio          *string   `json:"bio"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the shape exposed to other users in discovery and
// session payloads. No email, no admin flag.
type PublicUser struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
	}
}
