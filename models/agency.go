package models

import "time"

// LocalAgency is the tenant a submission belongs to, addressed by a URL-safe
// slug (the first path segment of every flow URL).
type LocalAgency struct {
	AgencyID     int       `gorm:"primaryKey;autoIncrement;column:agency_id" json:"agency_id"`
	UrlID        string    `gorm:"column:url_id;size:64;unique" json:"url_id"`
	Name         string    `gorm:"column:name" json:"name"`
	ContactEmail string    `gorm:"column:contact_email" json:"contact_email"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// StaffUser can sign in to the staff portal and see submissions for their
// agency only.
type StaffUser struct {
	StaffID   int       `gorm:"primaryKey;autoIncrement;column:staff_id" json:"staff_id"`
	Email     string    `gorm:"column:email;size:255;unique" json:"email"`
	Password  string    `gorm:"column:password" json:"-"`
	AgencyID  int       `gorm:"column:agency_id;index" json:"agency_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Agency LocalAgency `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
}

func (LocalAgency) TableName() string {
	return "local_agencies"
}

func (StaffUser) TableName() string {
	return "staff_users"
}
