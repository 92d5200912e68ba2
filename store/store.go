package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recert-portal-api/models"
)

// SubmissionStore is the persistence surface the flow core depends on. Not
// found is reported as a nil record with a nil error; errors mean the store
// itself failed.
type SubmissionStore interface {
	FindSubmission(token string) (*models.Submission, error)
	// UpsertSubmission creates the submission row if absent, otherwise
	// touches its updated_at.
	UpsertSubmission(token string, agencyID int) (*models.Submission, error)
	MarkSubmitted(token string) error

	FindStepData(token string, step models.Step) (json.RawMessage, error)
	// UpsertStepData writes the payload for (token, step) and bumps the
	// parent submission's updated_at.
	UpsertStepData(token string, step models.Step, payload any) error
	// LoadFormData assembles every stored step record into the typed
	// accumulated view the flow package operates on.
	LoadFormData(token string) (*models.FormData, error)

	FindAgency(urlID string) (*models.LocalAgency, error)
	FirstAgency() (*models.LocalAgency, error)

	FindStaffByEmail(email string) (*models.StaffUser, error)
	ListSubmissions(agencyID int) ([]models.Submission, error)
}

// GormStore implements SubmissionStore on a relational database. The handle
// is injected at construction; there is no package-level connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindSubmission(token string) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.Where("submission_id = ?", token).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return &sub, nil
}

func (s *GormStore) UpsertSubmission(token string, agencyID int) (*models.Submission, error) {
	now := time.Now()
	sub := models.Submission{
		SubmissionID: token,
		AgencyID:     agencyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}},
		DoUpdates: clause.Assignments(map[string]any{"updated_at": now}),
	}).Create(&sub).Error
	if err != nil {
		return nil, fmt.Errorf("upsert submission: %w", err)
	}
	return s.FindSubmission(token)
}

func (s *GormStore) MarkSubmitted(token string) error {
	err := s.db.Model(&models.Submission{}).
		Where("submission_id = ?", token).
		Updates(map[string]any{"submitted": true, "updated_at": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	return nil
}

func (s *GormStore) FindStepData(token string, step models.Step) (json.RawMessage, error) {
	var record models.StepRecord
	err := s.db.Where("submission_id = ? AND step = ?", token, string(step)).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find step data: %w", err)
	}
	return record.Payload, nil
}

func (s *GormStore) UpsertStepData(token string, step models.Step, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", step, err)
	}
	now := time.Now()
	record := models.StepRecord{
		SubmissionID: token,
		Step:         string(step),
		Payload:      raw,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "submission_id"}, {Name: "step"}},
			DoUpdates: clause.Assignments(map[string]any{"payload": raw, "updated_at": now}),
		}).Create(&record).Error
		if err != nil {
			return fmt.Errorf("upsert step data: %w", err)
		}
		// Writing a step keeps the whole session fresh.
		err = tx.Model(&models.Submission{}).
			Where("submission_id = ?", token).
			Update("updated_at", now).Error
		if err != nil {
			return fmt.Errorf("touch submission: %w", err)
		}
		return nil
	})
}

func (s *GormStore) LoadFormData(token string) (*models.FormData, error) {
	var records []models.StepRecord
	err := s.db.Where("submission_id = ?", token).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("load step records: %w", err)
	}
	return AssembleFormData(records)
}

// AssembleFormData decodes raw step records into the typed accumulated view.
// Records for unknown step names are ignored rather than rejected so that
// retired steps don't strand old submissions.
func AssembleFormData(records []models.StepRecord) (*models.FormData, error) {
	data := &models.FormData{}
	for _, record := range records {
		var dst any
		switch models.Step(record.Step) {
		case models.StepName:
			data.Name = &models.NameData{}
			dst = data.Name
		case models.StepCount:
			data.Count = &models.CountData{}
			dst = data.Count
		case models.StepDetails:
			data.Details = &models.DetailsData{}
			dst = data.Details
		case models.StepChanges:
			data.Changes = &models.ChangesData{}
			dst = data.Changes
		case models.StepUpload:
			data.Upload = &models.UploadData{}
			dst = data.Upload
		case models.StepContact:
			data.Contact = &models.ContactData{}
			dst = data.Contact
		default:
			continue
		}
		if err := json.Unmarshal(record.Payload, dst); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", record.Step, err)
		}
	}
	return data, nil
}

func (s *GormStore) FindAgency(urlID string) (*models.LocalAgency, error) {
	var agency models.LocalAgency
	err := s.db.Where("url_id = ?", urlID).First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find agency: %w", err)
	}
	return &agency, nil
}

func (s *GormStore) FirstAgency() (*models.LocalAgency, error) {
	var agency models.LocalAgency
	err := s.db.Order("agency_id ASC").First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first agency: %w", err)
	}
	return &agency, nil
}

func (s *GormStore) FindStaffByEmail(email string) (*models.StaffUser, error) {
	var staff models.StaffUser
	err := s.db.Preload("Agency").Where("email = ?", email).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find staff: %w", err)
	}
	return &staff, nil
}

func (s *GormStore) ListSubmissions(agencyID int) ([]models.Submission, error) {
	var subs []models.Submission
	err := s.db.Where("agency_id = ?", agencyID).Order("updated_at DESC").Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}
