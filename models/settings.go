package models

type AISettings struct {
	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	Persona     string   `json:"persona,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	Language    string   `json:"language,omitempty"`
}

type RevisionSettings struct {
	Enabled   bool   `json:"enabled"`
	Mode      string `json:"mode,omitempty"`
	Intervals []int  `json:"intervals,omitempty" validate:"omitempty,dive,gt=0"`
}

type AppSettings struct {
	Theme            string `json:"theme,omitempty" validate:"omitempty,theme"`
	Notifications    bool   `json:"notifications"`
	DailyGoalMinutes int    `json:"dailyGoalMinutes,omitempty"`
	WeekStart        int    `json:"weekStart" validate:"gte=0,lte=6"`
}

// SettingsKind names one of the per-user settings singletons.
type SettingsKind string

const (
	SettingsAI       SettingsKind = "ai"
	SettingsRevision SettingsKind = "revision"
	SettingsApp      SettingsKind = "app"
)
