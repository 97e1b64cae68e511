package models

import (
	"time"

	"github.com/noah-isme/academic-planner-api/internal/timeline"
)

// EventType classifies calendar events.
type EventType string

const (
	EventTypeGeneral EventType = "GENERAL"
	EventTypeExam    EventType = "EXAM"
	EventTypeProject EventType = "PROJECT"
	EventTypeMeeting EventType = "MEETING"
	EventTypeHoliday EventType = "HOLIDAY"
)

// Valid reports membership in the closed type set.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeGeneral, EventTypeExam, EventTypeProject, EventTypeMeeting, EventTypeHoliday:
		return true
	default:
		return false
	}
}

// Event is a dated occurrence scoped to a term.
type Event struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	StartDate   time.Time `db:"start_date" json:"startDate"`
	EndDate     time.Time `db:"end_date" json:"endDate"`
	Location    *string   `db:"location" json:"location"`
	Type        EventType `db:"type" json:"type"`
	TermID      string    `db:"term_id" json:"termId"`
	UserID      string    `db:"user_id" json:"userId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Phase derives the event phase relative to now.
func (e Event) Phase(now time.Time) timeline.Phase {
	return timeline.EventPhase(e.StartDate, e.EndDate, now)
}

// EventDetail is an event with its term.
type EventDetail struct {
	Event
	Term *Term `json:"term"`
}
