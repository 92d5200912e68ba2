package store

import (
	"encoding/json"
	"testing"

	"recert-portal-api/models"
)

func record(t *testing.T, step models.Step, payload any) models.StepRecord {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return models.StepRecord{SubmissionID: "tok", Step: string(step), Payload: raw}
}

func TestAssembleFormData(t *testing.T) {
	records := []models.StepRecord{
		record(t, models.StepName, models.NameData{FirstName: "Ada", LastName: "L"}),
		record(t, models.StepCount, models.CountData{HouseholdSize: 3}),
		record(t, models.StepChanges, models.ChangesData{IDChange: "yes", AddressChange: "no"}),
		record(t, models.StepDetails, models.DetailsData{Participants: []models.Participant{
			{Relationship: models.RelationshipSelf, FirstName: "Ada", LastName: "L", Adjunctive: "no", Tag: "p1"},
		}}),
	}

	data, err := AssembleFormData(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Name == nil || data.Name.FirstName != "Ada" {
		t.Fatalf("name payload not decoded: %+v", data.Name)
	}
	if data.Count == nil || data.Count.HouseholdSize != 3 {
		t.Fatalf("count payload not decoded: %+v", data.Count)
	}
	if data.Changes == nil || data.Changes.IDChange != "yes" {
		t.Fatalf("changes payload not decoded: %+v", data.Changes)
	}
	if data.Details == nil || len(data.Details.Participants) != 1 || data.Details.Participants[0].Tag != "p1" {
		t.Fatalf("details payload not decoded: %+v", data.Details)
	}
	if data.Upload != nil || data.Contact != nil {
		t.Fatal("absent steps must stay nil")
	}
}

func TestAssembleFormDataIgnoresUnknownSteps(t *testing.T) {
	records := []models.StepRecord{
		{SubmissionID: "tok", Step: "retired-step", Payload: json.RawMessage(`{"x":1}`)},
		record(t, models.StepContact, models.ContactData{PhoneNumber: "406-555-0100"}),
	}

	data, err := AssembleFormData(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Contact == nil || data.Contact.PhoneNumber != "406-555-0100" {
		t.Fatalf("contact payload not decoded: %+v", data.Contact)
	}
}

func TestAssembleFormDataRejectsCorruptPayload(t *testing.T) {
	records := []models.StepRecord{
		{SubmissionID: "tok", Step: string(models.StepName), Payload: json.RawMessage(`{`)},
	}
	if _, err := AssembleFormData(records); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAssembleFormDataEmpty(t *testing.T) {
	data, err := AssembleFormData(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data == nil {
		t.Fatal("expected empty FormData, got nil")
	}
	if data.Name != nil || data.Count != nil || data.Details != nil ||
		data.Changes != nil || data.Upload != nil || data.Contact != nil {
		t.Fatalf("expected all fields nil: %+v", data)
	}
}
