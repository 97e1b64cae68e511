package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
)

func TestParseDateLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2024-09-10T23:59:00Z":      time.Date(2024, 9, 10, 23, 59, 0, 0, time.UTC),
		"2024-09-10T23:59:00.5Z":    time.Date(2024, 9, 10, 23, 59, 0, 500000000, time.UTC),
		"2024-09-10T20:00:00-03:00": time.Date(2024, 9, 10, 23, 0, 0, 0, time.UTC),
		"2024-09-10T23:59":          time.Date(2024, 9, 10, 23, 59, 0, 0, time.UTC),
		"2024-09-10T23:59:30":       time.Date(2024, 9, 10, 23, 59, 30, 0, time.UTC),
		" 2024-09-01 ":              time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		got, err := ParseDate(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}

	for _, raw := range []string{"", "tomorrow", "2024-13-01", "10/09/2024"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestLooseIntDecoding(t *testing.T) {
	type payload struct {
		N LooseInt `json:"n"`
	}
	cases := []struct {
		raw   string
		value int
		valid bool
	}{
		{`{"n": 3}`, 3, true},
		{`{"n": "2"}`, 2, true},
		{`{"n": " 4 credits"}`, 4, true},
		{`{"n": 2.7}`, 2, true},
		{`{"n": "high"}`, 0, false},
		{`{"n": null}`, 0, false},
		{`{"n": true}`, 0, false},
		{`{}`, 0, false},
	}
	for _, tc := range cases {
		got := decode[payload](t, tc.raw)
		assert.Equal(t, tc.valid, got.N.Valid, tc.raw)
		assert.Equal(t, tc.value, got.N.Value, tc.raw)
	}
}

func TestPriorityOrDefault(t *testing.T) {
	assert.Equal(t, 3, priorityOrDefault(LooseInt{Value: 3, Valid: true}))
	assert.Equal(t, 1, priorityOrDefault(LooseInt{Value: 7, Valid: true}))
	assert.Equal(t, 1, priorityOrDefault(LooseInt{Value: 0, Valid: true}))
	assert.Equal(t, 1, priorityOrDefault(LooseInt{}))
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := validationError(v.Struct(AssignmentRequest{Status: "DONE"}))
	require.Error(t, err)
	msg := appErrors.FromError(err).Message
	assert.Equal(t, "Missing required fields: title, dueDate, termId; status must be one of: PENDING, IN_PROGRESS, COMPLETED, OVERDUE", msg)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
