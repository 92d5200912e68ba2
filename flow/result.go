package flow

import (
	"net/url"

	"recert-portal-api/models"
)

// Redirect is the tagged "go somewhere else" result returned by the route
// guard and session resolver. It is a plain value, never a panic: a nil
// *Redirect means the request may proceed. The HTTP adapter layer turns a
// non-nil Redirect into a 302.
//
// Either Step or Path is set. Step targets a page inside the current flow
// and is resolved against the request path with RouteRelative; Path is an
// absolute target (flow root, error page).
type Redirect struct {
	Step   models.Step
	Path   string
	Query  url.Values
	Reason string
}

// RedirectToStep targets a step within the current flow.
func RedirectToStep(step models.Step, reason string) *Redirect {
	return &Redirect{Step: step, Reason: reason}
}

// RedirectToPath targets an absolute path.
func RedirectToPath(path string, reason string) *Redirect {
	return &Redirect{Path: path, Reason: reason}
}

// Resolve renders the redirect as a concrete path, using requestPath as the
// base for step-relative targets.
func (r *Redirect) Resolve(requestPath string) string {
	if r.Path != "" {
		target := r.Path
		if len(r.Query) > 0 {
			target += "?" + r.Query.Encode()
		}
		return target
	}
	return RouteRelative(requestPath, r.Step, r.Query)
}
