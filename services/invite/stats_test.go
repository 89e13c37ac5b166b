package invite

import (
	"testing"
	"time"

	"github.com/neuralarc-ai/helium-inviter/models"
)

func codeWith(used bool, expiresAt *time.Time, sentTo ...string) models.InviteCode {
	return models.InviteCode{
		IsUsed:      used,
		ExpiresAt:   expiresAt,
		EmailSentTo: sentTo,
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	testCases := []struct {
		testName string
		codes    []models.InviteCode
		want     Stats
	}{
		{
			testName: "empty list",
			codes:    nil,
			want:     Stats{},
		},
		{
			testName: "single active code",
			codes: []models.InviteCode{
				codeWith(false, &future),
			},
			want: Stats{Total: 1, Active: 1},
		},
		{
			testName: "used code past expiry counts as used, not expired",
			codes: []models.InviteCode{
				codeWith(true, &past, "a@example.com"),
			},
			want: Stats{Total: 1, Used: 1, EmailsSent: 1, UsageRate: 100},
		},
		{
			testName: "mixed population",
			codes: []models.InviteCode{
				codeWith(true, &future, "a@example.com"),
				codeWith(false, &past),
				codeWith(false, &future, "b@example.com", "c@example.com"),
				codeWith(false, nil),
			},
			want: Stats{Total: 4, Used: 1, Expired: 1, Active: 2, EmailsSent: 3, UsageRate: 25},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			got := ComputeStats(tc.codes, now)
			if got != tc.want {
				t.Errorf("ComputeStats = %+v, want %+v", got, tc.want)
			}
		})
	}
}

// The dashboard relies on total always splitting cleanly into used, expired
// and active, whatever sequence of mutations produced the list.
func TestComputeStatsInvariant(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	codes := []models.InviteCode{}

	check := func(step string) {
		stats := ComputeStats(codes, now)
		if stats.Total != stats.Used+stats.Active+stats.Expired {
			t.Fatalf("%s: invariant broken: total=%d used=%d active=%d expired=%d",
				step, stats.Total, stats.Used, stats.Active, stats.Expired)
		}
	}

	check("empty")

	// create
	for i := 0; i < 5; i++ {
		codes = append(codes, codeWith(false, &future))
	}
	codes = append(codes, codeWith(false, &past))
	check("after create")

	// mark one used
	codes[0].IsUsed = true
	check("after mark used")

	// expire another
	codes[1].ExpiresAt = &past
	check("after expiry")

	// clear the used flag again
	codes[0].IsUsed = false
	check("after unmark")

	// delete
	codes = codes[:3]
	check("after delete")
}
