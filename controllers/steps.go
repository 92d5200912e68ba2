package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recert-portal-api/flow"
	"recert-portal-api/middleware"
	"recert-portal-api/models"
	"recert-portal-api/store"
)

// StepController serves the data-entry pages of the flow: name, count,
// details, changes, contact. GET returns the saved payload for the step
// (rendering is the frontend's job); POST validates, persists, and redirects
// to whatever the transition resolver picks next.
type StepController struct {
	Store store.SubmissionStore
}

func NewStepController(st store.SubmissionStore) *StepController {
	return &StepController{Store: st}
}

func currentAgency(c *gin.Context) *models.LocalAgency {
	return c.MustGet(middleware.CtxAgency).(*models.LocalAgency)
}

func currentSubmission(c *gin.Context) *models.Submission {
	return c.MustGet(middleware.CtxSubmission).(*models.Submission)
}

// Root is the flow's start page: agency info plus whether an in-progress
// session is being resumed.
func (sc *StepController) Root(c *gin.Context) {
	agency := currentAgency(c)
	sub := currentSubmission(c)

	data, err := sc.Store.LoadFormData(sub.SubmissionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agency":    gin.H{"url_id": agency.UrlID, "name": agency.Name},
		"resuming":  data.Name != nil,
		"firstStep": flow.RouteRelative(c.Request.URL.Path, models.StepName, nil),
	})
}

// About is informational and always viewable.
func (sc *StepController) About(c *gin.Context) {
	agency := currentAgency(c)
	c.JSON(http.StatusOK, gin.H{
		"agency": gin.H{"url_id": agency.UrlID, "name": agency.Name},
		"step":   models.StepAbout,
	})
}

// Show returns the saved payload of one data-entry step. The route guard
// has already verified the step is reachable.
func (sc *StepController) Show(c *gin.Context) {
	step := models.Step(c.Param("step"))
	data := c.MustGet(middleware.CtxFormData).(*models.FormData)

	body := gin.H{"step": step}
	switch step {
	case models.StepName:
		body["data"] = data.Name
	case models.StepCount:
		body["data"] = data.Count
	case models.StepDetails:
		body["data"] = data.Details
		body["slots"] = detailSlots(c, data)
	case models.StepChanges:
		body["data"] = data.Changes
	case models.StepContact:
		body["data"] = data.Contact
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown step"})
		return
	}
	c.JSON(http.StatusOK, body)
}

// detailSlots picks how many participant entry slots the details page should
// pre-render: the count carried over from the previous step's redirect, or
// the stored household size.
func detailSlots(c *gin.Context, data *models.FormData) int {
	if n, err := strconv.Atoi(c.Query("count")); err == nil && n > 0 {
		return n
	}
	if data.Count != nil {
		return data.Count.HouseholdSize
	}
	return 1
}

// Save validates and persists one data-entry step, then redirects to the
// next page computed by the step's transition resolver.
func (sc *StepController) Save(c *gin.Context) {
	step := models.Step(c.Param("step"))
	sub := currentSubmission(c)

	// A finalized submission is read-only until the user starts over.
	if sub.Submitted {
		if r := flow.CheckSubmitted(true, step); r != nil {
			c.Redirect(http.StatusFound, r.Resolve(c.Request.URL.Path))
			return
		}
	}

	var (
		payload any
		next    string
	)

	switch step {
	case models.StepName:
		var data models.NameData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		payload = &data
		next = flow.RouteFromName(c.Request.URL.Path, &data)

	case models.StepCount:
		var data models.CountData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		payload = &data
		next = flow.RouteFromCount(c.Request.URL.Path, &data)

	case models.StepDetails:
		var data models.DetailsData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now := time.Now()
		for i, p := range data.Participants {
			if err := p.Validate(now); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Participant " + strconv.Itoa(i+1) + ": " + err.Error()})
				return
			}
		}
		payload = &data
		next = flow.RouteFromDetails(c.Request.URL.Path, &data)

	case models.StepChanges:
		var data models.ChangesData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// The branch to upload depends on the participants already stored.
		stored, err := sc.Store.LoadFormData(sub.SubmissionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
			return
		}
		payload = &data
		next = flow.RouteFromChanges(c.Request.URL.Path, &data, stored.Details)

	case models.StepContact:
		var data models.ContactData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		payload = &data
		next = flow.RouteFromContact(c.Request.URL.Path, &data)

	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown step"})
		return
	}

	if err := sc.Store.UpsertStepData(sub.SubmissionID, step, payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save step"})
		return
	}

	c.Redirect(http.StatusFound, next)
}
