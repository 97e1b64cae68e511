// Package memory is an in-process store implementing the planner repositories.
// A single RWMutex guards all tables so multi-table cascades are atomic.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/academic-planner-api/internal/models"
)

// Store holds every table.
type Store struct {
	mu          sync.RWMutex
	users       map[string]models.User
	terms       map[string]models.Term
	courses     map[string]models.Course
	assignments map[string]models.Assignment
	events      map[string]models.Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:       make(map[string]models.User),
		terms:       make(map[string]models.Term),
		courses:     make(map[string]models.Course),
		assignments: make(map[string]models.Assignment),
		events:      make(map[string]models.Event),
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Users returns the user repository view.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Terms returns the term repository view.
func (s *Store) Terms() *TermRepository { return &TermRepository{s: s} }

// Courses returns the course repository view.
func (s *Store) Courses() *CourseRepository { return &CourseRepository{s: s} }

// Assignments returns the assignment repository view.
func (s *Store) Assignments() *AssignmentRepository { return &AssignmentRepository{s: s} }

// Events returns the event repository view.
func (s *Store) Events() *EventRepository { return &EventRepository{s: s} }

func stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// UserRepository is the users table.
type UserRepository struct{ s *Store }

// FindByID loads a user.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

// Create inserts a user unless the id already exists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.users[user.ID]; exists {
		return nil
	}
	stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	r.s.users[user.ID] = *user
	return nil
}

// TermRepository is the terms table.
type TermRepository struct{ s *Store }

// List returns the owner's terms, latest start first.
func (r *TermRepository) List(ctx context.Context, userID string) ([]models.Term, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	terms := []models.Term{}
	for _, term := range r.s.terms {
		if term.UserID == userID {
			terms = append(terms, term)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		a, b := terms[i], terms[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.After(b.StartDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return terms, nil
}

// ListByIDs loads the referenced terms.
func (r *TermRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Term, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	terms := []models.Term{}
	for _, id := range ids {
		if term, ok := r.s.terms[id]; ok {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

// FindByID loads a term.
func (r *TermRepository) FindByID(ctx context.Context, id string) (*models.Term, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	term, ok := r.s.terms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &term, nil
}

// Create inserts a term.
func (r *TermRepository) Create(ctx context.Context, term *models.Term) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&term.ID, &term.CreatedAt, &term.UpdatedAt)
	r.s.terms[term.ID] = *term
	return nil
}

// Update replaces a term.
func (r *TermRepository) Update(ctx context.Context, term *models.Term) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.terms[term.ID]; !ok {
		return sql.ErrNoRows
	}
	term.UpdatedAt = time.Now().UTC()
	r.s.terms[term.ID] = *term
	return nil
}

// Delete removes the term with its courses, assignments and events.
func (r *TermRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.terms[id]; !ok {
		return sql.ErrNoRows
	}
	for aid, a := range r.s.assignments {
		if a.TermID == id {
			delete(r.s.assignments, aid)
		}
	}
	for eid, e := range r.s.events {
		if e.TermID == id {
			delete(r.s.events, eid)
		}
	}
	for cid, c := range r.s.courses {
		if c.TermID == id {
			r.s.deleteCourseLocked(cid)
		}
	}
	delete(r.s.terms, id)
	return nil
}

func (s *Store) deleteCourseLocked(id string) {
	for aid, a := range s.assignments {
		if a.CourseID != nil && *a.CourseID == id {
			delete(s.assignments, aid)
		}
	}
	delete(s.courses, id)
}

// createdFirst breaks ordering ties by creation time, then id, so equal sort
// keys come back in the same order on every read.
func createdFirst(aCreated, bCreated time.Time, aID, bID string) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.Before(bCreated)
	}
	return aID < bID
}

// CourseRepository is the courses table.
type CourseRepository struct{ s *Store }

func sortCourses(courses []models.Course) {
	sort.Slice(courses, func(i, j int) bool {
		a, b := courses[i], courses[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return createdFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

// List returns the owner's courses ordered by name.
func (r *CourseRepository) List(ctx context.Context, userID string) ([]models.Course, error) {
	return r.filter(func(c models.Course) bool { return c.UserID == userID }), nil
}

// ListByIDs loads the referenced courses.
func (r *CourseRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	return r.filter(func(c models.Course) bool { return contains(ids, c.ID) }), nil
}

// ListByTermIDs loads the courses of the given terms.
func (r *CourseRepository) ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Course, error) {
	return r.filter(func(c models.Course) bool { return contains(termIDs, c.TermID) }), nil
}

func (r *CourseRepository) filter(keep func(models.Course) bool) []models.Course {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	courses := []models.Course{}
	for _, course := range r.s.courses {
		if keep(course) {
			courses = append(courses, course)
		}
	}
	sortCourses(courses)
	return courses
}

// FindByID loads a course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	course, ok := r.s.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &course, nil
}

// Create inserts a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	r.s.courses[course.ID] = *course
	return nil
}

// Update replaces a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[course.ID]; !ok {
		return sql.ErrNoRows
	}
	course.UpdatedAt = time.Now().UTC()
	r.s.courses[course.ID] = *course
	return nil
}

// Delete removes the course and the assignments referencing it.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[id]; !ok {
		return sql.ErrNoRows
	}
	r.s.deleteCourseLocked(id)
	return nil
}

// AssignmentRepository is the assignments table.
type AssignmentRepository struct{ s *Store }

// List returns the owner's assignments, earliest due first.
func (r *AssignmentRepository) List(ctx context.Context, userID string) ([]models.Assignment, error) {
	return r.filter(func(a models.Assignment) bool { return a.UserID == userID }), nil
}

// ListByTermIDs loads the assignments of the given terms.
func (r *AssignmentRepository) ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Assignment, error) {
	return r.filter(func(a models.Assignment) bool { return contains(termIDs, a.TermID) }), nil
}

// ListByCourseIDs loads the assignments of the given courses.
func (r *AssignmentRepository) ListByCourseIDs(ctx context.Context, courseIDs []string) ([]models.Assignment, error) {
	return r.filter(func(a models.Assignment) bool { return a.CourseID != nil && contains(courseIDs, *a.CourseID) }), nil
}

func (r *AssignmentRepository) filter(keep func(models.Assignment) bool) []models.Assignment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	assignments := []models.Assignment{}
	for _, a := range r.s.assignments {
		if keep(a) {
			assignments = append(assignments, a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return createdFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return assignments
}

// FindByID loads an assignment.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.assignments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

// Create inserts an assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *models.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	r.s.assignments[a.ID] = *a
	return nil
}

// Update replaces an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, a *models.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assignments[a.ID]; !ok {
		return sql.ErrNoRows
	}
	a.UpdatedAt = time.Now().UTC()
	r.s.assignments[a.ID] = *a
	return nil
}

// Delete removes an assignment.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assignments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.assignments, id)
	return nil
}

// EventRepository is the events table.
type EventRepository struct{ s *Store }

// List returns the owner's events, earliest start first.
func (r *EventRepository) List(ctx context.Context, userID string) ([]models.Event, error) {
	return r.filter(func(e models.Event) bool { return e.UserID == userID }), nil
}

// ListByTermIDs loads the events of the given terms.
func (r *EventRepository) ListByTermIDs(ctx context.Context, termIDs []string) ([]models.Event, error) {
	return r.filter(func(e models.Event) bool { return contains(termIDs, e.TermID) }), nil
}

func (r *EventRepository) filter(keep func(models.Event) bool) []models.Event {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	events := []models.Event{}
	for _, e := range r.s.events {
		if keep(e) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return createdFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return events
}

// FindByID loads an event.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	r.s.events[e.ID] = *e
	return nil
}

// Update replaces an event.
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[e.ID]; !ok {
		return sql.ErrNoRows
	}
	e.UpdatedAt = time.Now().UTC()
	r.s.events[e.ID] = *e
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.events, id)
	return nil
}
