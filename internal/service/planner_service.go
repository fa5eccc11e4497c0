package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/transfer"
)

// SlotOutcome tags what happened to one planned unit of work so callers
// can assert on it instead of digging through logs.
type SlotOutcome string

const (
	OutcomePlanned          SlotOutcome = "planned"
	OutcomeSkippedNoSlot    SlotOutcome = "skipped_no_capacity"
	OutcomeSkippedNoContent SlotOutcome = "skipped_no_content"
	OutcomeAcceptedClean    SlotOutcome = "accepted_clean"
	OutcomeAcceptedDegraded SlotOutcome = "accepted_degraded"
)

// Slot is one (date, platform, time) unit of scheduled work.
type Slot struct {
	Date      time.Time
	Platform  string
	Time      string // HH:MM
	AccountID int64
}

// SkippedSlot records demand the planner dropped for a date/platform.
type SkippedSlot struct {
	Date     time.Time
	Platform string
	Outcome  SlotOutcome
	Dropped  int
}

type PlanResult struct {
	Slots   []Slot
	Skipped []SkippedSlot
}

const dateLayout = "2006-01-02"
const clockLayout = "15:04"

// defaultPostingTimes are the built-in per-platform optimal times used when
// neither the run nor the consultant's schedule settings provide any.
var defaultPostingTimes = map[string][]string{
	models.PlatformInstagram: {"11:00", "14:00", "19:00"},
	models.PlatformX:         {"09:00", "12:00", "17:00"},
	models.PlatformLinkedin:  {"08:00", "12:00", "17:30"},
}

// Italian national holidays.
var holidays = map[string]bool{
	"2024-01-01": true, "2024-01-06": true, "2024-03-31": true, "2024-04-01": true,
	"2024-04-25": true, "2024-05-01": true, "2024-06-02": true, "2024-08-15": true,
	"2024-11-01": true, "2024-12-08": true, "2024-12-25": true, "2024-12-26": true,
	"2025-01-01": true, "2025-01-06": true, "2025-04-20": true, "2025-04-21": true,
	"2025-04-25": true, "2025-05-01": true, "2025-06-02": true, "2025-08-15": true,
	"2025-11-01": true, "2025-12-08": true, "2025-12-25": true, "2025-12-26": true,
	"2026-01-01": true, "2026-01-06": true, "2026-04-05": true, "2026-04-06": true,
	"2026-04-25": true, "2026-05-01": true, "2026-06-02": true, "2026-08-15": true,
	"2026-11-01": true, "2026-12-08": true, "2026-12-25": true, "2026-12-26": true,
}

type PlannerService interface {
	PlanSlots(run *transfer.AutopilotRun, existing []*models.Post, schedules map[string][]string) (*PlanResult, error)
}

type plannerService struct{}

func NewPlannerService() PlannerService {
	return &plannerService{}
}

// PlanSlots walks every date in the run's range and emits slots for each
// enabled platform, skipping excluded days and occupied times. It never
// fails on capacity exhaustion; excess demand is dropped and recorded.
func (p *plannerService) PlanSlots(run *transfer.AutopilotRun, existing []*models.Post, schedules map[string][]string) (*PlanResult, error) {
	start, err := time.Parse(dateLayout, run.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", run.StartDate, err)
	}
	end, err := time.Parse(dateLayout, run.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", run.EndDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s before start date %s", run.EndDate, run.StartDate)
	}

	for platform, plan := range run.Platforms {
		if !models.IsKnownPlatform(platform) {
			return nil, fmt.Errorf("unknown platform %q", platform)
		}
		if plan.PostsPerDay < 0 {
			return nil, fmt.Errorf("negative posts per day for %q", platform)
		}
	}

	excluded := make(map[string]bool, len(run.ExcludedDates))
	for _, d := range run.ExcludedDates {
		excluded[d] = true
	}

	occupied := occupiedTimes(existing)

	result := &PlanResult{}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dateKey := date.Format(dateLayout)

		if run.ExcludeWeekends && (date.Weekday() == time.Saturday || date.Weekday() == time.Sunday) {
			continue
		}
		if run.ExcludeHolidays && holidays[dateKey] {
			continue
		}
		if excluded[dateKey] {
			continue
		}

		for _, platform := range models.Platforms {
			plan, ok := run.Platforms[platform]
			if !ok || !plan.Enabled || plan.PostsPerDay == 0 {
				continue
			}

			candidates := resolveTimes(run, schedules, platform)
			available := make([]string, 0, len(candidates))
			for _, t := range candidates {
				if !occupied[platform][dateKey][t] {
					available = append(available, t)
				}
			}

			if len(available) == 0 {
				slog.Info("no available time slots",
					"platform", platform, "date", dateKey, "requested", plan.PostsPerDay)
				result.Skipped = append(result.Skipped, SkippedSlot{
					Date: date, Platform: platform, Outcome: OutcomeSkippedNoSlot, Dropped: plan.PostsPerDay,
				})
				continue
			}

			effective := plan.PostsPerDay
			if effective > len(available) {
				result.Skipped = append(result.Skipped, SkippedSlot{
					Date: date, Platform: platform, Outcome: OutcomeSkippedNoSlot,
					Dropped: effective - len(available),
				})
				effective = len(available)
			}

			for i := 0; i < effective; i++ {
				result.Slots = append(result.Slots, Slot{
					Date:      date,
					Platform:  platform,
					Time:      available[i],
					AccountID: plan.AccountID,
				})
			}
		}
	}

	return result, nil
}

// resolveTimes picks the candidate posting times for a platform: per-run
// override, then the consultant's saved schedule, then built-in defaults.
// Malformed entries are dropped.
func resolveTimes(run *transfer.AutopilotRun, schedules map[string][]string, platform string) []string {
	var raw []string
	if override, ok := run.OptimalTimes[platform]; ok && len(override) > 0 {
		raw = override
	} else if saved, ok := schedules[platform]; ok && len(saved) > 0 {
		raw = saved
	} else {
		raw = defaultPostingTimes[platform]
	}

	times := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, err := time.Parse(clockLayout, t); err != nil {
			slog.Info("dropping malformed posting time", "platform", platform, "time", t)
			continue
		}
		times = append(times, t)
	}
	return times
}

// occupiedTimes indexes existing scheduled posts as platform → date → HH:MM.
func occupiedTimes(existing []*models.Post) map[string]map[string]map[string]bool {
	occupied := make(map[string]map[string]map[string]bool)
	for _, post := range existing {
		if post.Status != models.PostStatusScheduled {
			continue
		}
		at := post.ScheduledAt.UTC()
		dateKey := at.Format(dateLayout)
		timeKey := at.Format(clockLayout)

		if occupied[post.Platform] == nil {
			occupied[post.Platform] = make(map[string]map[string]bool)
		}
		if occupied[post.Platform][dateKey] == nil {
			occupied[post.Platform][dateKey] = make(map[string]bool)
		}
		occupied[post.Platform][dateKey][timeKey] = true
	}
	return occupied
}
