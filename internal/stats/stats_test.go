package stats

import (
	"testing"
	"time"

	"dailydiet/internal/models"

	"github.com/stretchr/testify/assert"
)

var statsBase = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

// entriesFromPattern builds entries oldest to newest, one hour apart.
func entriesFromPattern(pattern []bool) []models.Diet {
	entries := make([]models.Diet, 0, len(pattern))
	for i, isDiet := range pattern {
		entries = append(entries, models.Diet{
			ID:       "diet-" + string(rune('a'+i)),
			Name:     "Meal",
			DateHour: statsBase.Add(time.Duration(i) * time.Hour),
			IsDiet:   isDiet,
		})
	}
	return entries
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{}, Summarize([]models.Diet{}))
}

func TestSummarizeSingleNonCompliant(t *testing.T) {
	summary := Summarize(entriesFromPattern([]bool{false}))
	assert.Equal(t, Summary{Total: 1, InDiet: 0, OutDiet: 1, Streak: 0}, summary)
}

func TestSummarizeAllCompliant(t *testing.T) {
	summary := Summarize(entriesFromPattern([]bool{true, true, true, true, true}))
	assert.Equal(t, Summary{Total: 5, InDiet: 5, OutDiet: 0, Streak: 5}, summary)
}

func TestSummarizeStreakBrokenByNonCompliant(t *testing.T) {
	// Oldest to newest: the three newest compliant entries form the streak.
	summary := Summarize(entriesFromPattern([]bool{true, true, false, true, true, true}))
	assert.Equal(t, Summary{Total: 6, InDiet: 5, OutDiet: 1, Streak: 3}, summary)
}

func TestSummarizeIgnoresInputOrder(t *testing.T) {
	entries := entriesFromPattern([]bool{true, false, true, true, false, true})
	expected := Summarize(entries)

	reversed := make([]models.Diet, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}

	assert.Equal(t, expected, Summarize(reversed))
}

func TestSummarizeUsesTimestampsNotInsertionOrder(t *testing.T) {
	// Three compliant entries followed by a non-compliant one in slice
	// order, but the non-compliant entry's timestamp falls between them:
	// chronologically t, f, t, t.
	entries := []models.Diet{
		{ID: "a", DateHour: statsBase, IsDiet: true},
		{ID: "b", DateHour: statsBase.Add(2 * time.Hour), IsDiet: true},
		{ID: "c", DateHour: statsBase.Add(3 * time.Hour), IsDiet: true},
		{ID: "d", DateHour: statsBase.Add(1 * time.Hour), IsDiet: false},
	}

	summary := Summarize(entries)
	assert.Equal(t, 2, summary.Streak)
}

func TestSummarizeLeavesInputUntouched(t *testing.T) {
	entries := entriesFromPattern([]bool{false, true, true})
	first := entries[0].ID
	_ = Summarize(entries)
	assert.Equal(t, first, entries[0].ID)
}
