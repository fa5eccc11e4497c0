package service

import (
	"testing"
	"time"

	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(start, end string, platforms map[string]transfer.PlatformPlan) *transfer.AutopilotRun {
	return &transfer.AutopilotRun{
		StartDate: start,
		EndDate:   end,
		Platforms: platforms,
	}
}

func instagramOnly(postsPerDay int) map[string]transfer.PlatformPlan {
	return map[string]transfer.PlatformPlan{
		models.PlatformInstagram: {Enabled: true, PostsPerDay: postsPerDay, AccountID: 1},
	}
}

func TestPlanSlotsFillsDefaultTimes(t *testing.T) {
	planner := NewPlannerService()

	// Monday and Tuesday.
	run := testRun("2025-03-03", "2025-03-04", instagramOnly(2))

	result, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 4)
	assert.Empty(t, result.Skipped)

	assert.Equal(t, "11:00", result.Slots[0].Time)
	assert.Equal(t, "14:00", result.Slots[1].Time)
	assert.Equal(t, "2025-03-03", result.Slots[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-03-04", result.Slots[2].Date.Format("2006-01-02"))
	for _, slot := range result.Slots {
		assert.Equal(t, models.PlatformInstagram, slot.Platform)
		assert.Equal(t, int64(1), slot.AccountID)
	}
}

func TestPlanSlotsExcludesWeekends(t *testing.T) {
	planner := NewPlannerService()

	// Friday through Monday.
	run := testRun("2025-03-07", "2025-03-10", instagramOnly(1))
	run.ExcludeWeekends = true

	result, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 2)
	assert.Equal(t, "2025-03-07", result.Slots[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-03-10", result.Slots[1].Date.Format("2006-01-02"))
}

func TestPlanSlotsExcludesHolidays(t *testing.T) {
	planner := NewPlannerService()

	// 2025-04-25 is Liberation Day.
	run := testRun("2025-04-24", "2025-04-25", instagramOnly(1))
	run.ExcludeHolidays = true

	result, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 1)
	assert.Equal(t, "2025-04-24", result.Slots[0].Date.Format("2006-01-02"))
}

func TestPlanSlotsExcludedDates(t *testing.T) {
	planner := NewPlannerService()

	run := testRun("2025-03-03", "2025-03-05", instagramOnly(1))
	run.ExcludedDates = []string{"2025-03-04"}

	result, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 2)
	for _, slot := range result.Slots {
		assert.NotEqual(t, "2025-03-04", slot.Date.Format("2006-01-02"))
	}
}

func TestPlanSlotsSkipsOccupiedTimes(t *testing.T) {
	planner := NewPlannerService()

	run := testRun("2025-03-03", "2025-03-03", instagramOnly(2))

	existing := []*models.Post{{
		Platform:    models.PlatformInstagram,
		Status:      models.PostStatusScheduled,
		ScheduledAt: time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC),
	}}

	result, err := planner.PlanSlots(run, existing, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 2)
	assert.Equal(t, "14:00", result.Slots[0].Time)
	assert.Equal(t, "19:00", result.Slots[1].Time)
}

func TestPlanSlotsIgnoresNonScheduledPosts(t *testing.T) {
	planner := NewPlannerService()

	run := testRun("2025-03-03", "2025-03-03", instagramOnly(3))

	// Cancelled and draft posts don't occupy slots.
	existing := []*models.Post{
		{
			Platform:    models.PlatformInstagram,
			Status:      models.PostStatusCancelled,
			ScheduledAt: time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC),
		},
		{
			Platform:    models.PlatformInstagram,
			Status:      models.PostStatusDraft,
			ScheduledAt: time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC),
		},
	}

	result, err := planner.PlanSlots(run, existing, nil)
	require.NoError(t, err)
	assert.Len(t, result.Slots, 3)
}

func TestPlanSlotsDropsExcessDemand(t *testing.T) {
	planner := NewPlannerService()

	run := testRun("2025-03-03", "2025-03-03", instagramOnly(5))

	result, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)
	assert.Len(t, result.Slots, 3)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, OutcomeSkippedNoSlot, result.Skipped[0].Outcome)
	assert.Equal(t, 2, result.Skipped[0].Dropped)
}

func TestPlanSlotsAllTimesOccupied(t *testing.T) {
	planner := NewPlannerService()

	run := testRun("2025-03-03", "2025-03-03", instagramOnly(2))

	var existing []*models.Post
	for _, clock := range []int{11, 14, 19} {
		existing = append(existing, &models.Post{
			Platform:    models.PlatformInstagram,
			Status:      models.PostStatusScheduled,
			ScheduledAt: time.Date(2025, 3, 3, clock, 0, 0, 0, time.UTC),
		})
	}

	result, err := planner.PlanSlots(run, existing, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 2, result.Skipped[0].Dropped)
}

func TestPlanSlotsTimeResolutionOrder(t *testing.T) {
	planner := NewPlannerService()

	saved := map[string][]string{models.PlatformInstagram: {"08:30"}}

	// Saved schedule beats defaults.
	run := testRun("2025-03-03", "2025-03-03", instagramOnly(1))
	result, err := planner.PlanSlots(run, nil, saved)
	require.NoError(t, err)
	require.Len(t, result.Slots, 1)
	assert.Equal(t, "08:30", result.Slots[0].Time)

	// The run override beats the saved schedule.
	run.OptimalTimes = map[string][]string{models.PlatformInstagram: {"21:15"}}
	result, err = planner.PlanSlots(run, nil, saved)
	require.NoError(t, err)
	require.Len(t, result.Slots, 1)
	assert.Equal(t, "21:15", result.Slots[0].Time)
}

func TestPlanSlotsDropsMalformedTimes(t *testing.T) {
	planner := NewPlannerService()

	run := testRun("2025-03-03", "2025-03-03", instagramOnly(2))
	run.OptimalTimes = map[string][]string{
		models.PlatformInstagram: {"25:99", "10:00"},
	}

	result, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 1)
	assert.Equal(t, "10:00", result.Slots[0].Time)
}

func TestPlanSlotsPlatformOrderIsStable(t *testing.T) {
	planner := NewPlannerService()

	run := testRun("2025-03-03", "2025-03-03", map[string]transfer.PlatformPlan{
		models.PlatformLinkedin:  {Enabled: true, PostsPerDay: 1},
		models.PlatformX:         {Enabled: true, PostsPerDay: 1},
		models.PlatformInstagram: {Enabled: true, PostsPerDay: 1},
	})

	first, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)
	second, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)

	require.Len(t, first.Slots, 3)
	assert.Equal(t, models.PlatformInstagram, first.Slots[0].Platform)
	assert.Equal(t, models.PlatformX, first.Slots[1].Platform)
	assert.Equal(t, models.PlatformLinkedin, first.Slots[2].Platform)
	assert.Equal(t, first.Slots, second.Slots)
}

func TestPlanSlotsSkipsDisabledPlatforms(t *testing.T) {
	planner := NewPlannerService()

	run := testRun("2025-03-03", "2025-03-03", map[string]transfer.PlatformPlan{
		models.PlatformInstagram: {Enabled: true, PostsPerDay: 1},
		models.PlatformX:         {Enabled: false, PostsPerDay: 3},
		models.PlatformLinkedin:  {Enabled: true, PostsPerDay: 0},
	})

	result, err := planner.PlanSlots(run, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 1)
	assert.Equal(t, models.PlatformInstagram, result.Slots[0].Platform)
}

func TestPlanSlotsRejectsBadInput(t *testing.T) {
	planner := NewPlannerService()

	_, err := planner.PlanSlots(testRun("03/03/2025", "2025-03-04", instagramOnly(1)), nil, nil)
	assert.Error(t, err)

	_, err = planner.PlanSlots(testRun("2025-03-04", "2025-03-03", instagramOnly(1)), nil, nil)
	assert.Error(t, err)

	_, err = planner.PlanSlots(testRun("2025-03-03", "2025-03-04", map[string]transfer.PlatformPlan{
		"myspace": {Enabled: true, PostsPerDay: 1},
	}), nil, nil)
	assert.Error(t, err)

	_, err = planner.PlanSlots(testRun("2025-03-03", "2025-03-04", instagramOnly(-1)), nil, nil)
	assert.Error(t, err)
}
