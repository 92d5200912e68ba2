package controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"recert-portal-api/flow"
	"recert-portal-api/middleware"
	"recert-portal-api/models"
	"recert-portal-api/store"
)

// NotifyFunc sends the agency notification mail. config.SendMail satisfies
// it; tests inject a recorder.
type NotifyFunc func(to []string, subject, html string) error

// ReviewController owns the terminal pages of the flow: review, the final
// submit action, and the confirmation.
type ReviewController struct {
	Store  store.SubmissionStore
	Notify NotifyFunc
}

func NewReviewController(st store.SubmissionStore, notify NotifyFunc) *ReviewController {
	return &ReviewController{Store: st, Notify: notify}
}

// Show assembles everything entered so far plus the required proofs for the
// review page. The route guard has already verified completeness.
func (rc *ReviewController) Show(c *gin.Context) {
	data := c.MustGet(middleware.CtxFormData).(*models.FormData)
	c.JSON(http.StatusOK, gin.H{
		"step":   models.StepReview,
		"data":   data,
		"proofs": flow.DetermineProof(data),
	})
}

// Submit finalizes the submission: flips the monotonic submitted flag,
// notifies the agency, and lands on confirm. Submitting twice is not an
// error; the second attempt just redirects with the previously-submitted
// marker.
func (rc *ReviewController) Submit(c *gin.Context) {
	sub := currentSubmission(c)

	if sub.Submitted {
		r := flow.CheckSubmitted(true, models.StepReview)
		c.Redirect(http.StatusFound, r.Resolve(c.Request.URL.Path))
		return
	}

	// The write path re-checks reachability: a direct POST to review with
	// missing steps gets the same guidance a GET would.
	data, err := rc.Store.LoadFormData(sub.SubmissionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}
	if r := flow.CheckRoute(models.StepReview, data); r != nil {
		c.Redirect(http.StatusFound, r.Resolve(c.Request.URL.Path))
		return
	}

	if err := rc.Store.MarkSubmitted(sub.SubmissionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit"})
		return
	}

	rc.notifyAgency(c, data)

	c.Redirect(http.StatusFound, flow.RouteRelative(c.Request.URL.Path, models.StepConfirm, nil))
}

// notifyAgency mails the local agency about the new submission. Best-effort:
// a delivery failure is logged and never shown to the applicant.
func (rc *ReviewController) notifyAgency(c *gin.Context, data *models.FormData) {
	if rc.Notify == nil {
		return
	}
	agency := currentAgency(c)
	if agency.ContactEmail == "" {
		return
	}
	sub := currentSubmission(c)

	participants := 0
	if data.Details != nil {
		participants = len(data.Details.Participants)
	}
	body := fmt.Sprintf(
		"<p>A recertification submission was received.</p><ul><li>Reference: %s</li><li>Participants: %d</li><li>Required proofs: %v</li></ul>",
		sub.SubmissionID, participants, flow.DetermineProof(data),
	)
	if err := rc.Notify([]string{agency.ContactEmail}, "New recertification submission", body); err != nil {
		log.Printf("Warning: agency notification failed for %s: %v", sub.SubmissionID, err)
	}
}

// Confirm is the terminal, read-only display state.
func (rc *ReviewController) Confirm(c *gin.Context) {
	sub := currentSubmission(c)
	c.JSON(http.StatusOK, gin.H{
		"step":                models.StepConfirm,
		"submitted":           sub.Submitted,
		"previouslySubmitted": c.Query("submitted") == "true",
		"reference":           sub.SubmissionID,
		"updated_at":          sub.UpdatedAt,
	})
}

// StartOver is the explicit escape hatch from the terminal state: it sends
// the client back to the flow root with a reset request, which makes the
// session middleware mint a fresh submission on arrival.
func (rc *ReviewController) StartOver(c *gin.Context) {
	agency := currentAgency(c)
	c.Redirect(http.StatusFound, flow.FlowRoot(agency.UrlID)+"?reset=true")
}
