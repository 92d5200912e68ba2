package flow

import (
	"reflect"
	"testing"

	"recert-portal-api/models"
)

func participants(adjunctive ...string) *models.DetailsData {
	d := &models.DetailsData{}
	for i, a := range adjunctive {
		d.Participants = append(d.Participants, models.Participant{
			Relationship: models.RelationshipSelf,
			FirstName:    "P",
			LastName:     "Q",
			Adjunctive:   a,
			Tag:          string(rune('a' + i)),
		})
	}
	return d
}

func TestDetermineProofOrdering(t *testing.T) {
	data := &models.FormData{
		Changes: &models.ChangesData{IDChange: "yes", AddressChange: "yes"},
		Details: participants("no"),
	}

	got := DetermineProof(data)
	want := []Proof{ProofAddress, ProofIdentity, ProofIncome}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDetermineProofEmpty(t *testing.T) {
	data := &models.FormData{
		Changes: &models.ChangesData{IDChange: "no", AddressChange: "no"},
		Details: participants("yes", "yes", "yes"),
	}

	if got := DetermineProof(data); len(got) != 0 {
		t.Fatalf("expected no proofs, got %v", got)
	}
}

func TestDetermineProofSingleCategories(t *testing.T) {
	cases := []struct {
		name string
		data *models.FormData
		want []Proof
	}{
		{
			name: "address only",
			data: &models.FormData{
				Changes: &models.ChangesData{IDChange: "no", AddressChange: "yes"},
				Details: participants("yes"),
			},
			want: []Proof{ProofAddress},
		},
		{
			name: "identity only",
			data: &models.FormData{
				Changes: &models.ChangesData{IDChange: "yes", AddressChange: "no"},
				Details: participants("yes"),
			},
			want: []Proof{ProofIdentity},
		},
		{
			name: "income from one of many participants",
			data: &models.FormData{
				Changes: &models.ChangesData{IDChange: "no", AddressChange: "no"},
				Details: participants("yes", "no", "yes"),
			},
			want: []Proof{ProofIncome},
		},
		{
			name: "identity and income keep fixed order",
			data: &models.FormData{
				Changes: &models.ChangesData{IDChange: "yes", AddressChange: "no"},
				Details: participants("no"),
			},
			want: []Proof{ProofIdentity, ProofIncome},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetermineProof(tc.data); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDetermineProofNeverInfersFromMissingData(t *testing.T) {
	// No changes answers yet: nothing is required, even with non-adjunctive
	// participants on file.
	data := &models.FormData{Details: participants("no", "no")}
	if got := DetermineProof(data); len(got) != 0 {
		t.Fatalf("expected no proofs without changes data, got %v", got)
	}

	if got := DetermineProof(nil); len(got) != 0 {
		t.Fatalf("expected no proofs for nil data, got %v", got)
	}
}

func TestDetermineProofIncomeIgnoresMissingDetails(t *testing.T) {
	data := &models.FormData{
		Changes: &models.ChangesData{IDChange: "no", AddressChange: "no"},
	}
	if got := DetermineProof(data); len(got) != 0 {
		t.Fatalf("expected no proofs, got %v", got)
	}
}
