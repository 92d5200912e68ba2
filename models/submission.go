package models

import (
	"encoding/json"
	"time"
)

// Submission is one person's in-progress or completed recertification
// attempt, keyed by the opaque token carried in the session cookie.
// Submitted is monotonic: it flips false to true exactly once and is never
// reversed by this application.
type Submission struct {
	SubmissionID string    `gorm:"primaryKey;column:submission_id;size:36" json:"submission_id"`
	AgencyID     int       `gorm:"column:agency_id;index" json:"agency_id"`
	Submitted    bool      `gorm:"column:submitted" json:"submitted"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Agency LocalAgency `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
}

// StepRecord holds the payload of one completed step for one submission,
// unique per (submission, step) pair with upsert semantics.
type StepRecord struct {
	StepRecordID int             `gorm:"primaryKey;autoIncrement;column:step_record_id" json:"step_record_id"`
	SubmissionID string          `gorm:"column:submission_id;size:36;uniqueIndex:idx_submission_step" json:"submission_id"`
	Step         string          `gorm:"column:step;size:16;uniqueIndex:idx_submission_step" json:"step"`
	Payload      json.RawMessage `gorm:"column:payload;type:json" json:"payload"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (StepRecord) TableName() string {
	return "step_records"
}
