package models

import (
	"time"

	"github.com/noah-isme/academic-planner-api/internal/timeline"
)

// AssignmentStatus is the client managed progress of an assignment.
type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "PENDING"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusCompleted  AssignmentStatus = "COMPLETED"
	AssignmentStatusOverdue    AssignmentStatus = "OVERDUE"
)

// Valid reports membership in the closed status set.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusInProgress, AssignmentStatusCompleted, AssignmentStatusOverdue:
		return true
	default:
		return false
	}
}

// Assignment priorities.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Assignment is a dated task, optionally tied to a course.
type Assignment struct {
	ID          string           `db:"id" json:"id"`
	Title       string           `db:"title" json:"title"`
	Description *string          `db:"description" json:"description"`
	DueDate     time.Time        `db:"due_date" json:"dueDate"`
	Priority    int              `db:"priority" json:"priority"`
	Status      AssignmentStatus `db:"status" json:"status"`
	CourseID    *string          `db:"course_id" json:"courseId"`
	TermID      string           `db:"term_id" json:"termId"`
	UserID      string           `db:"user_id" json:"userId"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

// IsOverdue derives the overdue flag relative to now.
func (a Assignment) IsOverdue(now time.Time) bool {
	return timeline.IsOverdue(a.DueDate, a.Status == AssignmentStatusCompleted, now)
}

// AssignmentDetail is an assignment with its term and optional course.
type AssignmentDetail struct {
	Assignment
	Term   *Term   `json:"term"`
	Course *Course `json:"course"`
}
