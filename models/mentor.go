package models

import "time"

type MentorMessage struct {
	ID        string `json:"id" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=user model system"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// MentorMemory is the long-lived state the mentor keeps about a user.
type MentorMemory struct {
	Summary    string        `json:"summary,omitempty"`
	Goals      []string      `json:"goals,omitempty"`
	Weaknesses []string      `json:"weaknesses,omitempty"`
	Backlog    []BacklogItem `json:"backlog,omitempty"`
	UpdatedAt  *time.Time    `json:"updatedAt,omitempty"`
}

type BacklogItem struct {
	ID       string `json:"id" validate:"required"`
	Topic    string `json:"topic"`
	Subject  string `json:"subject,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Priority string `json:"priority,omitempty"`
	AddedAt  int64  `json:"addedAt"`
}
