package models

import (
	"fmt"
	"time"
)

// Step identifies one page of the recertification flow. The empty string is
// the flow root (the agency's start page).
type Step string

const (
	StepName    Step = "name"
	StepCount   Step = "count"
	StepDetails Step = "details"
	StepChanges Step = "changes"
	StepUpload  Step = "upload"
	StepContact Step = "contact"
	StepReview  Step = "review"
	StepConfirm Step = "confirm"
	StepAbout   Step = "about"
)

// FlowSteps lists every step that stores form data, in page order.
var FlowSteps = []Step{StepName, StepCount, StepDetails, StepChanges, StepUpload, StepContact}

// Yes/no answers arrive from the form as strings, not booleans.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Relationship of a household participant to the person filling in the form.
type Relationship string

const (
	RelationshipSelf       Relationship = "self"
	RelationshipChild      Relationship = "child"
	RelationshipGrandchild Relationship = "grandchild"
	RelationshipFoster     Relationship = "foster"
	RelationshipOther      Relationship = "other"
)

// NameData is the payload of the "name" step.
type NameData struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	PreferredName string `json:"preferredName"`
}

// CountData is the payload of the "count" step: how many household members
// are recertifying. The value is carried to the details step as a query
// parameter so that page can pre-render entry slots.
type CountData struct {
	HouseholdSize int `json:"householdSize" binding:"required,min=1,max=12"`
}

// DateOfBirth is entered as separate day/month/year fields.
type DateOfBirth struct {
	Day   int `json:"day" binding:"required,min=1,max=31"`
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required"`
}

// Time returns the date as a UTC time, or false when the day/month/year
// combination is not a real calendar date.
func (d DateOfBirth) Time() (time.Time, bool) {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != d.Year || t.Month() != time.Month(d.Month) || t.Day() != d.Day {
		return time.Time{}, false
	}
	return t, true
}

// Validate rejects impossible dates, future dates, and dates more than 110
// years before now.
func (d DateOfBirth) Validate(now time.Time) error {
	t, ok := d.Time()
	if !ok {
		return fmt.Errorf("not a valid calendar date: %04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	if t.After(now) {
		return fmt.Errorf("date of birth is in the future")
	}
	if t.Before(now.AddDate(-110, 0, 0)) {
		return fmt.Errorf("date of birth is more than 110 years ago")
	}
	return nil
}

// Participant is one household member inside the "details" step payload.
// Tag is an opaque client-side identity that stays stable across add/remove
// operations on the form.
type Participant struct {
	Relationship  Relationship `json:"relationship" binding:"required,oneof=self child grandchild foster other"`
	FirstName     string       `json:"firstName" binding:"required"`
	LastName      string       `json:"lastName" binding:"required"`
	PreferredName string       `json:"preferredName"`
	DateOfBirth   DateOfBirth  `json:"dateOfBirth"`
	Adjunctive    string       `json:"adjunctive" binding:"required,oneof=yes no"`
	Tag           string       `json:"tag"`
}

// Validate applies the checks gin's binding tags cannot express.
func (p Participant) Validate(now time.Time) error {
	return p.DateOfBirth.Validate(now)
}

// DetailsData is the payload of the "details" step.
type DetailsData struct {
	Participants []Participant `json:"participants" binding:"required,min=1,dive"`
}

// ChangesData is the payload of the "changes" step. Both answers are
// required; the proof evaluator never infers anything from missing data.
type ChangesData struct {
	IDChange      string `json:"idChange" binding:"required,oneof=yes no"`
	AddressChange string `json:"addressChange" binding:"required,oneof=yes no"`
}

// Document is one uploaded file reference inside the "upload" step payload.
// The bytes themselves live in the blob store under Key.
type Document struct {
	Tag          string    `json:"tag"`
	OriginalName string    `json:"originalName"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// UploadData is the payload of the "upload" step.
type UploadData struct {
	Documents []Document `json:"documents"`
}

// ContactData is the payload of the "contact" step.
type ContactData struct {
	PhoneNumber    string `json:"phoneNumber" binding:"required"`
	AdditionalInfo string `json:"additionalInfo"`
}

// FormData is the accumulated, typed view of every step record stored for a
// submission. A nil field means the step has not been completed. The route
// guard, proof evaluator, and transition resolvers all operate on this.
type FormData struct {
	Name    *NameData    `json:"name,omitempty"`
	Count   *CountData   `json:"count,omitempty"`
	Details *DetailsData `json:"details,omitempty"`
	Changes *ChangesData `json:"changes,omitempty"`
	Upload  *UploadData  `json:"upload,omitempty"`
	Contact *ContactData `json:"contact,omitempty"`
}
