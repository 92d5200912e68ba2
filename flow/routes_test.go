package flow

import (
	"net/url"
	"testing"

	"recert-portal-api/models"
)

func TestRouteRelativeFromFlowRoot(t *testing.T) {
	got := RouteRelative("/gallatin/recertify", models.StepName, nil)
	if got != "/gallatin/recertify/name" {
		t.Fatalf("unexpected path: %s", got)
	}
}

func TestRouteRelativeReplacesLeaf(t *testing.T) {
	got := RouteRelative("/gallatin/recertify/name", models.StepCount, nil)
	if got != "/gallatin/recertify/count" {
		t.Fatalf("unexpected path: %s", got)
	}
}

func TestRouteRelativeTrailingSlash(t *testing.T) {
	got := RouteRelative("/gallatin/recertify/", models.StepName, nil)
	if got != "/gallatin/recertify/name" {
		t.Fatalf("unexpected path: %s", got)
	}
}

func TestRouteRelativeWithQuery(t *testing.T) {
	q := url.Values{"count": {"3"}}
	got := RouteRelative("/gallatin/recertify/count", models.StepDetails, q)
	if got != "/gallatin/recertify/details?count=3" {
		t.Fatalf("unexpected path: %s", got)
	}
}

func TestRouteRelativeIdempotent(t *testing.T) {
	q := url.Values{"count": {"5"}}
	first := RouteRelative("/ag/recertify/count", models.StepDetails, q)
	second := RouteRelative("/ag/recertify/count", models.StepDetails, q)
	if first != second {
		t.Fatalf("expected identical output, got %q then %q", first, second)
	}
}

func TestFlowRoot(t *testing.T) {
	if got := FlowRoot("gallatin"); got != "/gallatin/recertify" {
		t.Fatalf("unexpected root: %s", got)
	}
}

func TestRedirectResolve(t *testing.T) {
	r := RedirectToStep(models.StepCount, "test")
	if got := r.Resolve("/ag/recertify/name"); got != "/ag/recertify/count" {
		t.Fatalf("unexpected resolve: %s", got)
	}

	abs := RedirectToPath("/ag/recertify", "test")
	if got := abs.Resolve("/ag/recertify/name"); got != "/ag/recertify" {
		t.Fatalf("absolute path should win: %s", got)
	}

	abs.Query = url.Values{"submitted": {"true"}}
	if got := abs.Resolve("/x"); got != "/ag/recertify?submitted=true" {
		t.Fatalf("unexpected resolve with query: %s", got)
	}
}
