package models

import "time"

// Course is a subject taken within a term.
type Course struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Code        *string   `db:"code" json:"code"`
	Instructor  *string   `db:"instructor" json:"instructor"`
	Description *string   `db:"description" json:"description"`
	Credits     *int      `db:"credits" json:"credits"`
	TermID      string    `db:"term_id" json:"termId"`
	UserID      string    `db:"user_id" json:"userId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CourseDetail is a course with its term and assignments.
type CourseDetail struct {
	Course
	Term        *Term        `json:"term"`
	Assignments []Assignment `json:"assignments"`
}
