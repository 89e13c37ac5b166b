package models

import (
	"testing"
	"time"
)

func TestInviteCodeIsExpired(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	testCases := []struct {
		testName  string
		expiresAt *time.Time
		want      bool
	}{
		{testName: "no expiry never expires", expiresAt: nil, want: false},
		{testName: "past expiry", expiresAt: &past, want: true},
		{testName: "future expiry", expiresAt: &future, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			code := InviteCode{ExpiresAt: tc.expiresAt}
			if got := code.IsExpired(now); got != tc.want {
				t.Errorf("IsExpired = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInviteCodeWasSentTo(t *testing.T) {
	code := InviteCode{EmailSentTo: []string{"a@example.com", "b@example.com"}}

	if !code.WasSentTo("a@example.com") {
		t.Error("expected a@example.com to be tracked")
	}
	if code.WasSentTo("c@example.com") {
		t.Error("did not expect c@example.com to be tracked")
	}

	empty := InviteCode{}
	if empty.WasSentTo("a@example.com") {
		t.Error("empty tracking list should contain nothing")
	}
}
