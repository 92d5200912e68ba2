package flow

import (
	"net/url"
	"strings"

	"recert-portal-api/models"
)

// AnchorSegment marks the root of the recertification flow inside a URL
// (/:agency/recertify). Every step page lives one segment below it.
const AnchorSegment = "recertify"

// RouteRelative builds the path of a step relative to the current request
// path. When the request is at the flow root (leaf segment is the anchor)
// the step is appended; otherwise the current leaf is replaced. Pure and
// idempotent: same inputs, same string.
func RouteRelative(requestPath string, step models.Step, query url.Values) string {
	path := strings.TrimSuffix(requestPath, "/")
	segments := strings.Split(path, "/")
	if len(segments) > 0 && segments[len(segments)-1] != AnchorSegment {
		segments = segments[:len(segments)-1]
	}
	segments = append(segments, string(step))
	target := strings.Join(segments, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// FlowRoot returns the flow root path for an agency slug.
func FlowRoot(agencySlug string) string {
	return "/" + agencySlug + "/" + AnchorSegment
}
