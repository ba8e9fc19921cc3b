package entities

import (
	"time"
)

// SessionSummary is a read-only projection of a session. It is never
// persisted.
type SessionSummary struct {
	ID              string
	Name            string
	CreatedAt       time.Time
	CompletedAt     *time.Time
	Status          Status
	PlayerCount     int
	EventCount      int
	TotalChecks     int
	CompletedChecks int
	SuccessCount    int
}

// SuccessRate is SuccessCount over TotalChecks, 0 for an empty session
func (s SessionSummary) SuccessRate() float64 {
	if s.TotalChecks == 0 {
		return 0
	}
	return float64(s.SuccessCount) / float64(s.TotalChecks)
}

// ResultStats counts items by result
type ResultStats struct {
	Total   int
	Success int
	Failure int
	Pending int
}

// Summary computes the summary of a session
func (s *CheckSession) Summary() SessionSummary {
	players := make(map[string]struct{})
	events := make(map[string]struct{})
	summary := SessionSummary{
		ID:          s.ID,
		Name:        s.Name,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
		Status:      s.Status,
		TotalChecks: len(s.Items),
	}

	for _, item := range s.Items {
		players[item.PlayerID] = struct{}{}
		events[item.EventID] = struct{}{}
		if item.Result != ResultPending {
			summary.CompletedChecks++
		}
		if item.Result == ResultSuccess {
			summary.SuccessCount++
		}
	}
	summary.PlayerCount = len(players)
	summary.EventCount = len(events)

	return summary
}

// Stats counts the session's items by result
func (s *CheckSession) Stats() ResultStats {
	stats := ResultStats{Total: len(s.Items)}
	for _, item := range s.Items {
		switch item.Result {
		case ResultSuccess:
			stats.Success++
		case ResultFailure:
			stats.Failure++
		default:
			stats.Pending++
		}
	}
	return stats
}
