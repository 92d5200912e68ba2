package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recert-portal-api/flow"
	"recert-portal-api/models"
	"recert-portal-api/session"
	"recert-portal-api/store"
)

// Context keys set for step handlers downstream.
const (
	CtxSubmissionToken = "submissionToken"
	CtxSubmission      = "submission"
	CtxAgency          = "agency"
	CtxFormData        = "formData"
)

// StepSession resolves the tenant and the session for every flow request,
// translating the resolver's Redirect values into actual 302s. An unknown
// agency slug falls back to the first configured agency; no agency at all is
// a configuration error, never a silent default.
func StepSession(resolver *session.Resolver, st store.SubmissionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		agency, err := st.FindAgency(c.Param("agency"))
		if err != nil {
			c.Redirect(http.StatusFound, session.ErrorPagePath)
			c.Abort()
			return
		}
		if agency == nil {
			agency, err = st.FirstAgency()
			if err != nil {
				c.Redirect(http.StatusFound, session.ErrorPagePath)
				c.Abort()
				return
			}
			if agency == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No local agency is configured"})
				c.Abort()
				return
			}
		}

		rootPath := flow.FlowRoot(agency.UrlID)
		resetRequested := c.Query("reset") == "true"
		cookieValue, _ := c.Cookie(session.CookieName)

		res := resolver.Resolve(cookieValue, resetRequested, agency, c.Request.URL.Path, rootPath)
		if res.SetCookie != nil {
			http.SetCookie(c.Writer, res.SetCookie)
		}
		if res.Redirect != nil {
			c.Redirect(http.StatusFound, res.Redirect.Resolve(c.Request.URL.Path))
			c.Abort()
			return
		}

		c.Set(CtxSubmissionToken, res.Token)
		c.Set(CtxSubmission, res.Submission)
		c.Set(CtxAgency, agency)
		c.Next()
	}
}

// RouteGuard enforces the prerequisite chain on every step page read. Write
// paths are not guarded here: a POST that passes validation is its own
// evidence the user reached the step.
func RouteGuard(st store.SubmissionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		step := models.Step(c.Param("step"))
		sub := c.MustGet(CtxSubmission).(*models.Submission)
		agency := c.MustGet(CtxAgency).(*models.LocalAgency)

		// Redirect targets resolve against the flow root so nested reads
		// (e.g. document downloads) can't produce malformed paths.
		base := flow.FlowRoot(agency.UrlID)

		if r := flow.CheckSubmitted(sub.Submitted, step); r != nil {
			c.Redirect(http.StatusFound, r.Resolve(base))
			c.Abort()
			return
		}

		data, err := st.LoadFormData(sub.SubmissionID)
		if err != nil {
			c.Redirect(http.StatusFound, session.ErrorPagePath)
			c.Abort()
			return
		}
		if r := flow.CheckRoute(step, data); r != nil {
			c.Redirect(http.StatusFound, r.Resolve(base))
			c.Abort()
			return
		}

		c.Set(CtxFormData, data)
		c.Next()
	}
}
