package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"recert-portal-api/models"
	"recert-portal-api/session"
	"recert-portal-api/store"
)

type fakeStore struct {
	agency      *models.LocalAgency
	submissions map[string]*models.Submission
	formData    map[string]*models.FormData
	upserts     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		agency:      &models.LocalAgency{AgencyID: 1, UrlID: "gallatin", Name: "Gallatin"},
		submissions: map[string]*models.Submission{},
		formData:    map[string]*models.FormData{},
	}
}

func (f *fakeStore) FindSubmission(token string) (*models.Submission, error) {
	sub, ok := f.submissions[token]
	if !ok {
		return nil, nil
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeStore) UpsertSubmission(token string, agencyID int) (*models.Submission, error) {
	f.upserts++
	now := time.Now()
	sub, ok := f.submissions[token]
	if !ok {
		sub = &models.Submission{SubmissionID: token, AgencyID: agencyID, CreatedAt: now}
		f.submissions[token] = sub
	}
	sub.UpdatedAt = now
	copied := *sub
	return &copied, nil
}

func (f *fakeStore) MarkSubmitted(token string) error {
	f.submissions[token].Submitted = true
	return nil
}

func (f *fakeStore) FindStepData(string, models.Step) (json.RawMessage, error) { return nil, nil }
func (f *fakeStore) UpsertStepData(string, models.Step, any) error             { return nil }

func (f *fakeStore) LoadFormData(token string) (*models.FormData, error) {
	if data, ok := f.formData[token]; ok {
		return data, nil
	}
	return &models.FormData{}, nil
}

func (f *fakeStore) FindAgency(urlID string) (*models.LocalAgency, error) {
	if urlID == f.agency.UrlID {
		return f.agency, nil
	}
	return nil, nil
}

func (f *fakeStore) FirstAgency() (*models.LocalAgency, error)          { return f.agency, nil }
func (f *fakeStore) FindStaffByEmail(string) (*models.StaffUser, error) { return nil, nil }
func (f *fakeStore) ListSubmissions(int) ([]models.Submission, error)   { return nil, nil }

var _ store.SubmissionStore = (*fakeStore)(nil)

func newFlowRouter(st *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := session.NewResolver(st, []byte("test-secret"), 1800*time.Second)

	router := gin.New()
	group := router.Group("/:agency/recertify")
	group.Use(StepSession(resolver, st))
	group.Use(RouteGuard(st))
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "root"})
	})
	group.GET("/:step", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": c.Param("step")})
	})
	return router
}

func get(router *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func TestFirstVisitToStepRedirectsToRootWithCookie(t *testing.T) {
	st := newFakeStore()
	router := newFlowRouter(st)

	w := get(router, "/gallatin/recertify/details", "")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/gallatin/recertify" {
		t.Fatalf("expected redirect to flow root, got %s", loc)
	}
	sessionCookie(t, w)
}

func TestRootThenStepNavigation(t *testing.T) {
	st := newFakeStore()
	router := newFlowRouter(st)

	w := get(router, "/gallatin/recertify", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 at root, got %d", w.Code)
	}
	cookie := sessionCookie(t, w)
	writes := st.upserts

	// Name has no prerequisites and must be reachable.
	w = get(router, "/gallatin/recertify/name", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 at name, got %d (location %s)", w.Code, w.Header().Get("Location"))
	}
	if st.upserts != writes {
		t.Fatalf("resuming wrote to the store: %d -> %d", writes, st.upserts)
	}

	// Details is blocked until name and count exist.
	w = get(router, "/gallatin/recertify/details", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 at details, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/gallatin/recertify/name" {
		t.Fatalf("expected redirect to name, got %s", loc)
	}
}

func TestGuardRedirectsToEarliestUnmetStep(t *testing.T) {
	st := newFakeStore()
	router := newFlowRouter(st)

	w := get(router, "/gallatin/recertify", "")
	cookie := sessionCookie(t, w)

	var token string
	for tok := range st.submissions {
		token = tok
	}
	st.formData[token] = &models.FormData{
		Name:  &models.NameData{FirstName: "A", LastName: "B"},
		Count: &models.CountData{HouseholdSize: 2},
	}

	w = get(router, "/gallatin/recertify/review", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/gallatin/recertify/details" {
		t.Fatalf("expected redirect to details, got %s", loc)
	}
}

func TestSubmittedSessionAlwaysLandsOnConfirm(t *testing.T) {
	st := newFakeStore()
	router := newFlowRouter(st)

	w := get(router, "/gallatin/recertify", "")
	cookie := sessionCookie(t, w)

	for tok := range st.submissions {
		st.submissions[tok].Submitted = true
	}

	for _, path := range []string{"/gallatin/recertify/review", "/gallatin/recertify/name"} {
		w = get(router, path, cookie)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, w.Code)
		}
		loc := w.Header().Get("Location")
		if !strings.HasPrefix(loc, "/gallatin/recertify/confirm") || !strings.Contains(loc, "submitted=true") {
			t.Fatalf("%s: expected confirm redirect with marker, got %s", path, loc)
		}
	}
}

func TestUnknownAgencyFallsBackToFirst(t *testing.T) {
	st := newFakeStore()
	router := newFlowRouter(st)

	// The slug is unknown; the request still resolves against the first
	// configured agency and lands on its flow root.
	w := get(router, "/nowhere/recertify/name", "")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/gallatin/recertify" {
		t.Fatalf("expected fallback agency root, got %s", loc)
	}
}
