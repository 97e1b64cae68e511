// Package timeline derives date based status for planner records.
//
// Every function takes the reference time explicitly and has no side effects, so
// results are reproducible and never persisted.
package timeline

import "time"

// Phase is the position of a dated record relative to a reference time.
type Phase string

const (
	PhasePast     Phase = "past"
	PhaseCurrent  Phase = "current"
	PhaseUpcoming Phase = "upcoming"
	PhaseOngoing  Phase = "ongoing"
)

// IsOverdue is true iff due is strictly before now and the work is not completed.
func IsOverdue(due time.Time, completed bool, now time.Time) bool {
	return !completed && due.Before(now)
}

// TermPhase is current when start <= now <= end, upcoming when now < start, past otherwise.
func TermPhase(start, end, now time.Time) Phase {
	switch {
	case now.Before(start):
		return PhaseUpcoming
	case !now.After(end):
		return PhaseCurrent
	default:
		return PhasePast
	}
}

// EventPhase is upcoming when start > now, past when end < now, ongoing otherwise.
func EventPhase(start, end, now time.Time) Phase {
	switch {
	case start.After(now):
		return PhaseUpcoming
	case end.Before(now):
		return PhasePast
	default:
		return PhaseOngoing
	}
}

// DayLayout formats calendar day keys.
const DayLayout = "2006-01-02"

// DayKey is the calendar day of t in loc, formatted with DayLayout. Two
// instants share a key iff they fall on the same local day.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}
