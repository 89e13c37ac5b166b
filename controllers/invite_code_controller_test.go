package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// Count bounds are checked before any code is generated or written, so the
// controller needs no backing services for these cases.
func newInviteCodeTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	icc := NewInviteCodeController(nil, nil)
	r := gin.New()
	r.POST("/api/generate-codes", icc.GenerateInviteCodes)
	return r
}

func TestGenerateInviteCodesCountBounds(t *testing.T) {
	r := newInviteCodeTestRouter()

	testCases := []struct {
		testName string
		count    int
	}{
		{testName: "zero", count: 0},
		{testName: "negative", count: -1},
		{testName: "just above the cap", count: 101},
		{testName: "way above the cap", count: 150},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			body := fmt.Sprintf(`{"count":%d,"prefix":"NA"}`, tc.count)
			w := postJSON(t, r, "/api/generate-codes", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("count %d: status = %d, want %d", tc.count, w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), "Count must be between 1 and 100") {
				t.Errorf("count %d: body %q missing bound message", tc.count, w.Body.String())
			}
		})
	}
}

func TestGenerateInviteCodesNegativeExpiry(t *testing.T) {
	r := newInviteCodeTestRouter()

	w := postJSON(t, r, "/api/generate-codes", `{"count":1,"expires_in_days":-7}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
