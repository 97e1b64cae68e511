package models

import "time"

// User owns every term and, through them, all planner records.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UserContext is the caller identity threaded through every service call.
type UserContext struct {
	UserID string
	Email  string
	Name   string
}

// Owns reports whether the caller owns a record with the given owner id.
func (u UserContext) Owns(ownerID string) bool {
	return u.UserID != "" && u.UserID == ownerID
}
