package flow

import (
	"net/url"
	"strconv"

	"recert-portal-api/models"
)

// Step transition resolvers: given the current request path and the data
// just submitted for a step, each returns the relative URL of the next
// page. All of them are pure; callers persist the step record first, then
// redirect to the result.

// RouteFromName always continues to the household count.
func RouteFromName(requestPath string, _ *models.NameData) string {
	return RouteRelative(requestPath, models.StepCount, nil)
}

// RouteFromCount continues to details, carrying the chosen household size so
// the details page can pre-render that many participant slots.
func RouteFromCount(requestPath string, data *models.CountData) string {
	query := url.Values{"count": {strconv.Itoa(data.HouseholdSize)}}
	return RouteRelative(requestPath, models.StepDetails, query)
}

// RouteFromDetails always continues to the change questions. Details feeds
// the proof evaluator but does not branch by itself.
func RouteFromDetails(requestPath string, _ *models.DetailsData) string {
	return RouteRelative(requestPath, models.StepChanges, nil)
}

// RouteFromChanges branches on the proof requirements computed from the
// just-submitted change answers merged with the stored participant details:
// documents needed means upload, otherwise straight to contact.
func RouteFromChanges(requestPath string, changes *models.ChangesData, details *models.DetailsData) string {
	merged := &models.FormData{Changes: changes, Details: details}
	if len(DetermineProof(merged)) > 0 {
		return RouteRelative(requestPath, models.StepUpload, nil)
	}
	return RouteRelative(requestPath, models.StepContact, nil)
}

// RouteFromUpload continues to contact once documents are in place.
func RouteFromUpload(requestPath string, _ *models.UploadData) string {
	return RouteRelative(requestPath, models.StepContact, nil)
}

// RouteFromContact always continues to the review page. Review's own submit
// action is terminal and handled by its controller: it marks the submission
// and lands on confirm.
func RouteFromContact(requestPath string, _ *models.ContactData) string {
	return RouteRelative(requestPath, models.StepReview, nil)
}
