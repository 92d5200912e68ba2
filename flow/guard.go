package flow

import (
	"net/url"

	"recert-portal-api/models"
)

// chainEntry pairs a step with the predicate that tells whether its data is
// present. The prerequisite chain is data: adding or removing a step is a
// one-line change here, not a cascade of conditionals.
type chainEntry struct {
	step models.Step
	done func(*models.FormData) bool
}

func always(*models.FormData) bool { return true }

// prerequisiteChain returns the ordered chain for the given accumulated
// data. The upload step is only part of the chain when the answers so far
// require at least one proof document.
func prerequisiteChain(data *models.FormData) []chainEntry {
	chain := []chainEntry{
		{models.StepName, func(d *models.FormData) bool { return d.Name != nil }},
		{models.StepCount, func(d *models.FormData) bool { return d.Count != nil }},
		{models.StepDetails, func(d *models.FormData) bool { return d.Details != nil && len(d.Details.Participants) > 0 }},
		{models.StepChanges, func(d *models.FormData) bool { return d.Changes != nil }},
	}
	if len(DetermineProof(data)) > 0 {
		chain = append(chain, chainEntry{models.StepUpload, func(d *models.FormData) bool {
			return d.Upload != nil && len(d.Upload.Documents) > 0
		}})
	}
	chain = append(chain,
		chainEntry{models.StepContact, func(d *models.FormData) bool { return d.Contact != nil }},
		// Review and confirm carry no data of their own; reaching them in
		// the walk means every prior step is satisfied.
		chainEntry{models.StepReview, always},
		chainEntry{models.StepConfirm, always},
	)
	return chain
}

// CheckRoute decides whether the requested step may be viewed given the data
// entered so far. A nil result allows the request; otherwise the redirect
// targets the earliest step whose data is still missing.
//
// The flow root and the informational about page are always viewable. A
// direct request for upload when no proofs are required redirects forward to
// contact: upload is only reachable when it is needed.
func CheckRoute(step models.Step, data *models.FormData) *Redirect {
	if step == "" || step == models.StepAbout {
		return nil
	}
	if data == nil {
		data = &models.FormData{}
	}

	for _, entry := range prerequisiteChain(data) {
		if entry.step == step {
			return nil
		}
		if !entry.done(data) {
			return RedirectToStep(entry.step, "prerequisite not met")
		}
	}

	// Upload was asked for while no proofs are required: skip forward.
	// Anything else missing from the chain is an unknown step name and is
	// left to the handler's 404.
	if step == models.StepUpload {
		return RedirectToStep(models.StepContact, "no proofs required")
	}
	return nil
}

// CheckSubmitted guards every step page once the submission has been
// finalized: everything except the confirmation (and the informational
// about page) lands on confirm. The submitted marker distinguishes a manual
// back-navigation from the ordinary post-submit redirect.
func CheckSubmitted(submitted bool, step models.Step) *Redirect {
	if !submitted || step == models.StepConfirm || step == models.StepAbout {
		return nil
	}
	r := RedirectToStep(models.StepConfirm, "previously submitted")
	r.Query = url.Values{"submitted": {"true"}}
	return r
}
