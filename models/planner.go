package models

import "time"

type DayPlan struct {
	Date        string      `json:"date" validate:"required,len=10,dateformat"`
	Blocks      []PlanBlock `json:"blocks,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	TargetHours float64     `json:"targetHours,omitempty"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
}

type PlanBlock struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	MaterialID string `json:"materialId,omitempty"`
	Done       bool   `json:"done"`
}

// DailyTracker is merged on save so partial updates keep sibling fields.
type DailyTracker struct {
	Date         string          `json:"date" validate:"required,dateformat"`
	Mood         string          `json:"mood,omitempty"`
	SleepHours   *float64        `json:"sleepHours,omitempty"`
	StudyMinutes *int            `json:"studyMinutes,omitempty"`
	Habits       map[string]bool `json:"habits,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}
