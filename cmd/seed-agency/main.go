package main

import (
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recert-portal-api/config"
	"recert-portal-api/models"
)

// seed-agency creates or refreshes a local agency and, optionally, an
// initial staff user. Run once per tenant:
//
//	go run ./cmd/seed-agency -slug gallatin -name "Gallatin WIC" \
//	    -email wic@gallatin.example -staff-email admin@gallatin.example \
//	    -staff-password changeme
func main() {
	slug := flag.String("slug", "", "URL-safe agency slug (required)")
	name := flag.String("name", "", "agency display name")
	email := flag.String("email", "", "agency notification email")
	staffEmail := flag.String("staff-email", "", "initial staff login email")
	staffPassword := flag.String("staff-password", "", "initial staff password")
	flag.Parse()

	if *slug == "" {
		log.Fatal("-slug is required")
	}
	if (*staffEmail == "") != (*staffPassword == "") {
		log.Fatal("-staff-email and -staff-password must be provided together")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.OpenDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.LocalAgency{},
		&models.StaffUser{},
		&models.Submission{},
		&models.StepRecord{},
	); err != nil {
		log.Fatal("Migration failed:", err)
	}

	agency, err := upsertAgency(db, *slug, *name, *email)
	if err != nil {
		log.Fatal("Failed to seed agency:", err)
	}
	log.Printf("Agency %q ready (id=%d)", agency.UrlID, agency.AgencyID)

	if *staffEmail != "" {
		if err := upsertStaff(db, agency, *staffEmail, *staffPassword); err != nil {
			log.Fatal("Failed to seed staff user:", err)
		}
		log.Printf("Staff user %q ready", *staffEmail)
	}
}

func upsertAgency(db *gorm.DB, slug, name, email string) (*models.LocalAgency, error) {
	var agency models.LocalAgency
	err := db.Where("url_id = ?", slug).First(&agency).Error
	now := time.Now()
	if err == gorm.ErrRecordNotFound {
		agency = models.LocalAgency{
			UrlID:        slug,
			Name:         name,
			ContactEmail: email,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if agency.Name == "" {
			agency.Name = slug
		}
		if err := db.Create(&agency).Error; err != nil {
			return nil, err
		}
		return &agency, nil
	}
	if err != nil {
		return nil, err
	}

	if name != "" {
		agency.Name = name
	}
	if email != "" {
		agency.ContactEmail = email
	}
	agency.UpdatedAt = now
	if err := db.Save(&agency).Error; err != nil {
		return nil, err
	}
	return &agency, nil
}

func upsertStaff(db *gorm.DB, agency *models.LocalAgency, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	var staff models.StaffUser
	err = db.Where("email = ?", email).First(&staff).Error
	if err == gorm.ErrRecordNotFound {
		staff = models.StaffUser{
			Email:     email,
			Password:  string(hash),
			AgencyID:  agency.AgencyID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return db.Create(&staff).Error
	}
	if err != nil {
		return err
	}

	staff.Password = string(hash)
	staff.AgencyID = agency.AgencyID
	staff.UpdatedAt = now
	return db.Save(&staff).Error
}
