package dto

import (
	"time"

	"github.com/noah-isme/academic-planner-api/internal/models"
)

// PlannerSnapshot holds the raw stored records of one user. Derived values are never part of it.
type PlannerSnapshot struct {
	Terms       []models.Term       `json:"terms"`
	Courses     []models.Course     `json:"courses"`
	Assignments []models.Assignment `json:"assignments"`
	Events      []models.Event      `json:"events"`
	LoadedAt    time.Time           `json:"loadedAt"`
}
