package invite

import (
	"time"

	"github.com/neuralarc-ai/helium-inviter/models"
)

// Stats are the dashboard aggregates for a set of invite codes.
type Stats struct {
	Total      int     `json:"total"`
	Used       int     `json:"used"`
	Expired    int     `json:"expired"`
	Active     int     `json:"active"`
	EmailsSent int     `json:"emails_sent"`
	UsageRate  float64 `json:"usage_rate"`
}

// ComputeStats derives the aggregates by a single scan over the list.
// Expired counts codes past their expiry that were never used, so
// total == used + expired + active holds.
func ComputeStats(codes []models.InviteCode, now time.Time) Stats {
	var stats Stats
	stats.Total = len(codes)
	for i := range codes {
		code := &codes[i]
		switch {
		case code.IsUsed:
			stats.Used++
		case code.IsExpired(now):
			stats.Expired++
		}
		stats.EmailsSent += len(code.EmailSentTo)
	}
	stats.Active = stats.Total - stats.Used - stats.Expired
	if stats.Total > 0 {
		stats.UsageRate = float64(stats.Used) / float64(stats.Total) * 100
	}
	return stats
}
