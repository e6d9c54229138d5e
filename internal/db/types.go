package db

import (
	"time"

	"github.com/google/uuid"
)

// User is a row of the users table. Accounts are created by the token command or on first write.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     *string   `json:"email,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Resume is a stored resume without its text.
type Resume struct {
	ID              int64     `json:"id"`
	FileName        string    `json:"file_name"`
	ExtractedSkills []string  `json:"extracted_skills"`
	UploadDate      time.Time `json:"upload_date"`
}

// Stored roadmap defaults.
const (
	RoadmapTitle         = "Learning Roadmap"
	RoadmapTimelineWeeks = 12
	RoadmapStatusActive  = "active"
	StepDurationDays     = 7
)

// HistoryLimit is the number of analyses returned by ListAnalysisHistory.
const HistoryLimit = 10
