package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserCounts holds the live number of features created and votes cast by a user.
type UserCounts struct {
	Features int `json:"features"`
	Votes    int `json:"votes"`
}

// UserProfile is a sanitized user together with its aggregate counts.
type UserProfile struct {
	User
	Count UserCounts `json:"_count"`
}

// UserDetail extends UserProfile with the user's features and votes.
type UserDetail struct {
	UserProfile
	Features []Feature `json:"features"`
	Votes    []Vote    `json:"votes"`
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name  *string
	Email *string
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil
}
