package models

type KnowledgeBaseEntry struct {
	PageNumber int      `json:"pageNumber" validate:"gte=0"`
	Title      string   `json:"title,omitempty"`
	Subject    string   `json:"subject,omitempty"`
	Content    string   `json:"content,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	MaterialID string   `json:"materialId,omitempty"`
}

type TimeLogEntry struct {
	ID              string `json:"id" validate:"required"`
	Date            string `json:"date" validate:"required,dateformat"`
	StartTime       int64  `json:"startTime"`
	EndTime         int64  `json:"endTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Activity        string `json:"activity,omitempty"`
	Subject         string `json:"subject,omitempty"`
	MaterialID      string `json:"materialId,omitempty"`
}

type FMGEEntry struct {
	ID          string   `json:"id" validate:"required"`
	Subject     string   `json:"subject"`
	Topic       string   `json:"topic,omitempty"`
	Status      string   `json:"status,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	AttemptedAt string   `json:"attemptedAt,omitempty"`
}

// StudyEntry.Time is a time-of-day string ("HH:MM") and sorts lexically.
type StudyEntry struct {
	ID              string `json:"id" validate:"required"`
	Date            string `json:"date" validate:"required,dateformat"`
	Time            string `json:"time" validate:"omitempty,timeofday"`
	Subject         string `json:"subject,omitempty"`
	Topic           string `json:"topic,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// BulkResult reports how far a chunked bulk write got.
type BulkResult struct {
	TotalGroups     int `json:"totalGroups"`
	CommittedGroups int `json:"committedGroups"`
	SavedEntries    int `json:"savedEntries"`
}

// TempUpload is returned for uploads the caller is expected to delete later.
type TempUpload struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
