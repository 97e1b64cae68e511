package dto

// CalendarDay groups what falls on one local calendar day.
type CalendarDay struct {
	Date        string           `json:"date"`
	Assignments []AssignmentView `json:"assignments"`
	Events      []EventView      `json:"events"`
}

// CalendarResponse is the payload behind GET /calendar.
type CalendarResponse struct {
	Month               string           `json:"month"`
	Timezone            string           `json:"timezone"`
	TermID              *string          `json:"termId"`
	Days                []CalendarDay    `json:"days"`
	UpcomingAssignments []AssignmentView `json:"upcomingAssignments"`
	UpcomingEvents      []EventView      `json:"upcomingEvents"`
}
