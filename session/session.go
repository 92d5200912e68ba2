package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"recert-portal-api/flow"
	"recert-portal-api/models"
	"recert-portal-api/store"
)

// CookieName is the single session cookie; its value is a signed container
// holding only the submission token.
const CookieName = "prp_session"

// ErrorPagePath is where fatal store failures land. Everything else in the
// session lifecycle recovers by minting a fresh session.
const ErrorPagePath = "/error"

// Claims is the signed cookie payload.
type Claims struct {
	SubmissionID string `json:"submissionID"`
	jwt.RegisteredClaims
}

// Resolution is the outcome of resolving a request's session. A non-nil
// Redirect means the caller must stop and redirect; SetCookie (when present)
// must be attached to the response either way.
type Resolution struct {
	Token      string
	Submission *models.Submission
	SetCookie  *http.Cookie
	Redirect   *flow.Redirect
}

// Resolver maps the inbound cookie to a submission, creating a new one when
// the session is absent, invalid, spoofed, or stale. All collaborators are
// injected; the resolver holds no global state.
type Resolver struct {
	store  store.SubmissionStore
	secret []byte
	maxAge time.Duration

	// now is a test seam.
	now func() time.Time
}

func NewResolver(st store.SubmissionStore, secret []byte, maxAge time.Duration) *Resolver {
	return &Resolver{store: st, secret: secret, maxAge: maxAge, now: time.Now}
}

// Resolve decides the submission identity for one request.
//
// A fresh, known, unsubmitted session is returned as-is with no store write.
// A submitted session is also returned as-is: step pages decide what to do
// with it. Anything else (no cookie, bad signature, unknown token, stale
// submission, explicit reset) mints a new token. When the mint happens
// anywhere but the flow root, or replaces a cookie the client still holds,
// the result carries a redirect to rootPath so the client restarts the flow
// with the new cookie.
func (r *Resolver) Resolve(cookieValue string, resetRequested bool, agency *models.LocalAgency, requestPath, rootPath string) *Resolution {
	mustRedirect := false

	if token := r.parseCookie(cookieValue); token != "" && !resetRequested {
		sub, err := r.store.FindSubmission(token)
		if err != nil {
			return &Resolution{Redirect: flow.RedirectToPath(ErrorPagePath, "store failure")}
		}
		if sub != nil {
			if sub.Submitted {
				return &Resolution{Token: token, Submission: sub}
			}
			if r.now().Sub(sub.UpdatedAt) <= r.maxAge {
				return &Resolution{Token: token, Submission: sub}
			}
			// Stale: fall through and mint.
		} else {
			// Token signed by us but unknown to the store (spoofed or
			// long-expired). The stale cookie must be replaced via a
			// redirect, never a silent continuation.
			mustRedirect = true
		}
	}

	token := uuid.NewString()
	sub, err := r.store.UpsertSubmission(token, agency.AgencyID)
	if err != nil {
		return &Resolution{Redirect: flow.RedirectToPath(ErrorPagePath, "store failure")}
	}

	cookie, err := r.newCookie(token)
	if err != nil {
		return &Resolution{Redirect: flow.RedirectToPath(ErrorPagePath, "cookie signing failure")}
	}

	res := &Resolution{Token: token, Submission: sub, SetCookie: cookie}
	if mustRedirect || requestPath != rootPath {
		res.Redirect = flow.RedirectToPath(rootPath, "session reset")
	}
	return res
}

// parseCookie extracts the submission token, returning "" for anything
// absent, undecodable, or signed with the wrong key.
func (r *Resolver) parseCookie(value string) string {
	if value == "" {
		return ""
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ""
	}
	return claims.SubmissionID
}

func (r *Resolver) newCookie(submissionID string) (*http.Cookie, error) {
	claims := Claims{
		SubmissionID: submissionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(r.now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}
