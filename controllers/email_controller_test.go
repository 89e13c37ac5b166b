package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// The validation layer must reject bad requests before any database or SMTP
// work happens, so a controller with no backing services is enough here; a
// request that slipped past validation would panic and fail the test.
func newEmailTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ec := NewEmailController(nil, nil, nil)
	r := gin.New()
	r.POST("/api/send-invite-email", ec.SendInviteEmail)
	r.POST("/api/send-reminder-email", ec.SendReminderEmail)
	r.POST("/api/test-email", ec.SendTestEmail)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendInviteEmailValidation(t *testing.T) {
	r := newEmailTestRouter()

	testCases := []struct {
		testName string
		body     string
	}{
		{
			testName: "missing email",
			body:     `{"inviteCode":"NA7X2K9","firstName":"Aditya"}`,
		},
		{
			testName: "missing invite code",
			body:     `{"email":"a@example.com","firstName":"Aditya"}`,
		},
		{
			testName: "missing first name",
			body:     `{"email":"a@example.com","inviteCode":"NA7X2K9"}`,
		},
		{
			testName: "empty body",
			body:     `{}`,
		},
		{
			testName: "malformed email",
			body:     `{"email":"not-an-email","inviteCode":"NA7X2K9","firstName":"Aditya"}`,
		},
		{
			testName: "email without tld",
			body:     `{"email":"a@example","inviteCode":"NA7X2K9","firstName":"Aditya"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			w := postJSON(t, r, "/api/send-invite-email", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), "error") {
				t.Errorf("body %q missing error field", w.Body.String())
			}
		})
	}
}

func TestSendReminderEmailValidation(t *testing.T) {
	r := newEmailTestRouter()

	w := postJSON(t, r, "/api/send-reminder-email", `{"email":"bad","inviteCode":"NA7X2K9","firstName":"Aditya"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = postJSON(t, r, "/api/send-reminder-email", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSendTestEmailValidation(t *testing.T) {
	r := newEmailTestRouter()

	w := postJSON(t, r, "/api/test-email", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "Test email address is required") {
		t.Errorf("body %q missing required-field message", w.Body.String())
	}

	w = postJSON(t, r, "/api/test-email", `{"testEmail":"not an email"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCapitalizeName(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "aditya", want: "Aditya"},
		{in: "ADITYA", want: "Aditya"},
		{in: "a", want: "A"},
		{in: "émile", want: "Émile"},
		{in: "ÉMILE", want: "Émile"},
		{in: "ß", want: "SS"},
		{in: "", want: ""},
	}

	for _, tc := range testCases {
		if got := capitalizeName(tc.in); got != tc.want {
			t.Errorf("capitalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
