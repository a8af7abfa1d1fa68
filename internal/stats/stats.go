// Package stats computes adherence statistics over a user's diet entries.
package stats

import (
	"sort"

	"dailydiet/internal/models"
)

// Summary aggregates a set of diet entries.
type Summary struct {
	Total   int `json:"total"`
	InDiet  int `json:"inDiet"`
	OutDiet int `json:"outDiet"`
	Streak  int `json:"streak"`
}

// Summarize counts compliant and non-compliant entries and finds the
// longest unbroken run of compliant entries ordered by date_hour, most
// recent first. Pure and deterministic; an empty or nil input yields the
// zero Summary. The caller's slice is left untouched.
func Summarize(entries []models.Diet) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	sorted := make([]models.Diet, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateHour.After(sorted[j].DateHour)
	})

	summary := Summary{Total: len(sorted)}
	current := 0

	for _, entry := range sorted {
		if entry.IsDiet {
			summary.InDiet++
			current++
		} else {
			summary.OutDiet++
			current = 0
		}

		if current >= summary.Streak {
			summary.Streak = current
		}
	}

	return summary
}
