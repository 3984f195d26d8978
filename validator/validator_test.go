package validator

import (
	"errors"
	"testing"

	"study-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DayPlan(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.DayPlan
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid plan",
			req:       models.DayPlan{Date: "2024-01-05"},
			wantError: false,
		},
		{
			name:      "Missing date",
			req:       models.DayPlan{},
			wantError: true,
			errorMsg:  "date is required",
		},
		{
			name:      "Unpadded date",
			req:       models.DayPlan{Date: "2024-1-5"},
			wantError: true,
			errorMsg:  "date must be exactly 10 characters",
		},
		{
			name:      "Wrong order",
			req:       models.DayPlan{Date: "05-01-2024"},
			wantError: true,
			errorMsg:  "date must be in YYYY-MM-DD format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Login(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.LoginRequest
		wantError bool
		errorMsg  string
	}{
		{name: "Plain id", req: models.LoginRequest{ID: "asha"}},
		{name: "Id with padding", req: models.LoginRequest{ID: " Asha.K "}},
		{name: "Missing id", req: models.LoginRequest{}, wantError: true, errorMsg: "id is required"},
		{name: "Id with @", req: models.LoginRequest{ID: "a@b"}, wantError: true, errorMsg: "may only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Entries(t *testing.T) {
	v := New()
	temp := 3.5

	tests := []struct {
		name      string
		req       any
		wantError bool
		errorMsg  string
	}{
		{
			name: "Valid study entry",
			req:  &models.StudyEntry{ID: "s1", Date: "2024-03-10", Time: "07:30"},
		},
		{
			name:      "Study entry with bad time",
			req:       &models.StudyEntry{ID: "s1", Date: "2024-03-10", Time: "7:30pm"},
			wantError: true,
			errorMsg:  "time must be in HH:MM format",
		},
		{
			name:      "Chat message with unknown role",
			req:       &models.MaterialChatMessage{Role: "bot", Text: "hi"},
			wantError: true,
			errorMsg:  "role must be one of: user model system",
		},
		{
			name:      "Negative knowledge base page",
			req:       &models.KnowledgeBaseEntry{PageNumber: -1},
			wantError: true,
			errorMsg:  "pageNumber must be greater than or equal to 0",
		},
		{
			name:      "Temperature out of range",
			req:       &models.AISettings{Temperature: &temp},
			wantError: true,
			errorMsg:  "temperature must be less than or equal to 2",
		},
		{
			name:      "Unknown theme",
			req:       &models.AppSettings{Theme: "blue"},
			wantError: true,
			errorMsg:  "theme must be one of: light, dark, system",
		},
		{
			name:      "Week start out of range",
			req:       &models.AppSettings{WeekStart: 7},
			wantError: true,
			errorMsg:  "less than or equal to 6",
		},
		{
			name: "Empty app settings",
			req:  &models.AppSettings{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)

			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ReturnsValidationErrors(t *testing.T) {
	err := New().Validate(&models.TimeLogEntry{})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"id", "date"}, fields)
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2024-01-05"))
	assert.False(t, IsDate("2024-1-5"))
	assert.False(t, IsDate(""))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "id", Message: "id is required", Tag: "required"},
		{Field: "date", Message: "date must be in YYYY-MM-DD format", Tag: "dateformat"},
	}

	errMsg := errs.Error()
	assert.Contains(t, errMsg, "id is required")
	assert.Contains(t, errMsg, "date must be in YYYY-MM-DD format")
}
