package dto

import (
	"time"

	"github.com/noah-isme/academic-planner-api/internal/models"
	"github.com/noah-isme/academic-planner-api/internal/timeline"
)

// DashboardStats aggregates planner counters for the caller.
type DashboardStats struct {
	TotalTerms           int     `json:"totalTerms"`
	CurrentTerms         int     `json:"currentTerms"`
	TotalCourses         int     `json:"totalCourses"`
	TotalAssignments     int     `json:"totalAssignments"`
	CompletedAssignments int     `json:"completedAssignments"`
	OverdueAssignments   int     `json:"overdueAssignments"`
	CompletionRate       float64 `json:"completionRate"`
}

// TermView is a term with its derived phase.
type TermView struct {
	models.Term
	Phase timeline.Phase `json:"phase"`
}

// AssignmentView is an assignment with display names and its overdue flag.
type AssignmentView struct {
	models.Assignment
	TermName   string  `json:"termName"`
	CourseName *string `json:"courseName"`
	IsOverdue  bool    `json:"isOverdue"`
}

// EventView is an event with its term name and derived phase.
type EventView struct {
	models.Event
	TermName string         `json:"termName"`
	Phase    timeline.Phase `json:"phase"`
}

// DashboardResponse is the payload behind GET /dashboard.
type DashboardResponse struct {
	GeneratedAt         time.Time        `json:"generatedAt"`
	Stats               DashboardStats   `json:"stats"`
	CurrentTerm         *TermView        `json:"currentTerm"`
	UpcomingAssignments []AssignmentView `json:"upcomingAssignments"`
	UpcomingEvents      []EventView      `json:"upcomingEvents"`
}
