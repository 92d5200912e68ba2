package flow

import "recert-portal-api/models"

// Proof is a category of supporting documentation a submission must include.
type Proof string

const (
	ProofAddress  Proof = "address"
	ProofIdentity Proof = "identity"
	ProofIncome   Proof = "income"
)

// DetermineProof computes which document categories the accumulated answers
// require. Pure and deterministic; the output order is fixed (address,
// identity, income) so callers can compare lists directly.
//
// Nothing is ever inferred from missing data: until the changes step has
// been answered the result is empty.
func DetermineProof(data *models.FormData) []Proof {
	if data == nil || data.Changes == nil {
		return nil
	}

	var proofs []Proof
	if data.Changes.AddressChange == models.AnswerYes {
		proofs = append(proofs, ProofAddress)
	}
	if data.Changes.IDChange == models.AnswerYes {
		proofs = append(proofs, ProofIdentity)
	}

	// Income proof is needed when any participant is not adjunctively
	// eligible through another program.
	if data.Details != nil {
		for _, p := range data.Details.Participants {
			if p.Adjunctive == models.AnswerNo {
				proofs = append(proofs, ProofIncome)
				break
			}
		}
	}

	return proofs
}
