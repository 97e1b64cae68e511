package models

import (
	"time"

	"github.com/noah-isme/academic-planner-api/internal/timeline"
)

// Term models an academic period that scopes courses, assignments and events.
type Term struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"startDate"`
	EndDate   time.Time `db:"end_date" json:"endDate"`
	UserID    string    `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Phase derives the term phase relative to now.
func (t Term) Phase(now time.Time) timeline.Phase {
	return timeline.TermPhase(t.StartDate, t.EndDate, now)
}

// TermDetail is a term with every record it owns.
type TermDetail struct {
	Term
	Courses     []Course     `json:"courses"`
	Assignments []Assignment `json:"assignments"`
	Events      []Event      `json:"events"`
}
