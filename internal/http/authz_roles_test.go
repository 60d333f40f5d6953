package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jsonPost(path, body, sid string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) (bool, string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body.Success, body.Message
}

func TestOwnerDashboardGate(t *testing.T) {
	app, _, principalRepo := newTestApp(t)

	// anonymous -> login redirect
	resp, err := app.Test(httptest.NewRequest("GET", "/owner-dashboard", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/owner-login" {
		t.Fatalf("want redirect to /owner-login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// a user session is the wrong role for the dashboard
	bindUserSession(t, principalRepo, "sid-user")
	reqUser := httptest.NewRequest("GET", "/owner-dashboard", nil)
	reqUser.AddCookie(&http.Cookie{Name: "sid", Value: "sid-user"})
	resp, err = app.Test(reqUser)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/owner-login" {
		t.Fatalf("user session must bounce off the dashboard, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// an owner session gets through
	bindOwnerSession(t, principalRepo, "sid-owner")
	reqOwner := httptest.NewRequest("GET", "/owner-dashboard", nil)
	reqOwner.AddCookie(&http.Cookie{Name: "sid", Value: "sid-owner"})
	resp, err = app.Test(reqOwner)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner expected 200, got %d", resp.StatusCode)
	}
}

func TestUserPagesGate(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, path := range []string{"/profile", "/care/new"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
			t.Fatalf("%s: want redirect to /login, got %d %q", path, resp.StatusCode, resp.Header.Get("Location"))
		}
	}
}

func TestJSONEndpointsRejectAnonymous(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, path := range []string{"/like-pet/1", "/request-adoption/1", "/delete-profile", "/care/1/comment"} {
		resp, err := app.Test(jsonPost(path, `{}`, ""))
		if err != nil {
			t.Fatal(err)
		}
		if ok, _ := decodeEnvelope(t, resp); ok {
			t.Fatalf("%s: anonymous request must fail", path)
		}
	}
}

func TestOwnerJSONEndpointsRejectUsers(t *testing.T) {
	app, _, principalRepo := newTestApp(t)
	bindUserSession(t, principalRepo, "sid-user")

	for _, path := range []string{"/add-pet", "/update-pet/1", "/delete-pet/1", "/update-request-status/1"} {
		resp, err := app.Test(jsonPost(path, `{}`, "sid-user"))
		if err != nil {
			t.Fatal(err)
		}
		ok, msg := decodeEnvelope(t, resp)
		if ok || msg != "Unauthorized" {
			t.Fatalf("%s: want Unauthorized for a user session, got ok=%v msg=%q", path, ok, msg)
		}
	}
}

func TestAnalyticsJSONSelfGated(t *testing.T) {
	app, _, principalRepo := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/owner-dashboard/analytics", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous analytics want 401, got %d", resp.StatusCode)
	}

	bindOwnerSession(t, principalRepo, "sid-owner")
	req := httptest.NewRequest("GET", "/owner-dashboard/analytics", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-owner"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner analytics want 200, got %d", resp.StatusCode)
	}
	var rpt struct {
		PetsByStatus     map[string]int `json:"pets_by_status"`
		TopPets          []any          `json:"top_pets"`
		CategoryCounts   []any          `json:"category_distribution"`
		RequestsByStatus map[string]int `json:"requests_by_status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpt); err != nil {
		t.Fatal(err)
	}
	if rpt.PetsByStatus["available"] != 10 {
		t.Fatalf("want 10 available seeded pets in report, got %+v", rpt.PetsByStatus)
	}
	if rpt.TopPets == nil {
		t.Fatal("top_pets must be a list, not null")
	}
}
