package models

type StudyMaterial struct {
	ID         string   `json:"id" validate:"required"`
	Title      string   `json:"title"`
	Type       string   `json:"type,omitempty"`
	Content    string   `json:"content,omitempty"`
	FileURL    string   `json:"fileUrl,omitempty"`
	SourceName string   `json:"sourceName,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Progress   *float64 `json:"progress,omitempty"`
	IsActive   bool     `json:"isActive"`
	CreatedAt  int64    `json:"createdAt"`
}

// MaterialChatMessage lives under a material; its ID is assigned on insert.
type MaterialChatMessage struct {
	ID        string `json:"id,omitempty"`
	Role      string `json:"role" validate:"required,oneof=user model system"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type ToggleActiveRequest struct {
	IsActive bool `json:"isActive"`
}
