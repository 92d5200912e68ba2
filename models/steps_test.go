package models

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestDateOfBirthValid(t *testing.T) {
	cases := []DateOfBirth{
		{Day: 1, Month: 1, Year: 2020},
		{Day: 29, Month: 2, Year: 2020}, // leap day
		{Day: 31, Month: 12, Year: 1920},
		{Day: 15, Month: 3, Year: 2026}, // today
	}
	for _, d := range cases {
		if err := d.Validate(testNow); err != nil {
			t.Errorf("%+v: unexpected error %v", d, err)
		}
	}
}

func TestDateOfBirthRejectsImpossibleDates(t *testing.T) {
	cases := []DateOfBirth{
		{Day: 31, Month: 4, Year: 2020},  // April has 30 days
		{Day: 29, Month: 2, Year: 2021},  // not a leap year
		{Day: 0, Month: 1, Year: 2020},   // zero day
		{Day: 15, Month: 13, Year: 2020}, // month overflow
	}
	for _, d := range cases {
		if err := d.Validate(testNow); err == nil {
			t.Errorf("%+v: expected an error", d)
		}
	}
}

func TestDateOfBirthRejectsFuture(t *testing.T) {
	d := DateOfBirth{Day: 16, Month: 3, Year: 2026}
	if err := d.Validate(testNow); err == nil {
		t.Error("expected future date to be rejected")
	}
}

func TestDateOfBirthRejectsOver110Years(t *testing.T) {
	d := DateOfBirth{Day: 14, Month: 3, Year: 1916}
	if err := d.Validate(testNow); err == nil {
		t.Error("expected date older than 110 years to be rejected")
	}

	// Exactly at the boundary is still acceptable.
	d = DateOfBirth{Day: 15, Month: 3, Year: 1916}
	if err := d.Validate(testNow); err != nil {
		t.Errorf("boundary date rejected: %v", err)
	}
}

func TestParticipantValidateUsesDateOfBirth(t *testing.T) {
	p := Participant{
		Relationship: RelationshipChild,
		FirstName:    "A",
		LastName:     "B",
		DateOfBirth:  DateOfBirth{Day: 31, Month: 4, Year: 2020},
		Adjunctive:   AnswerYes,
		Tag:          "t1",
	}
	if err := p.Validate(testNow); err == nil {
		t.Error("expected participant with impossible DOB to be rejected")
	}
}
