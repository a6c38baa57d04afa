// Package calendar groups sessions into Monday-anchored weeks for the
// schedule view.
package calendar

import (
	"time"

	"github.com/mathcode/tutor-admin-api/internal/models"
)

// DayFormat is the wire format for session dates.
const DayFormat = "2006-01-02"

// WeekStart returns the Monday of the week containing t, truncated to
// midnight in t's location.
func WeekStart(t time.Time) time.Time {
	back := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		back = 6
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -back)
}

// WeekDates returns the seven dates of the week starting at start.
func WeekDates(start time.Time) []time.Time {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// GroupByDate buckets sessions falling inside the week of ref, keyed by
// their date string. Sessions with unparseable dates are skipped.
func GroupByDate(sessions []models.Session, ref time.Time) map[string][]models.Session {
	start := WeekStart(ref)
	end := start.AddDate(0, 0, 7)

	grouped := make(map[string][]models.Session)
	for _, s := range sessions {
		day, err := time.ParseInLocation(DayFormat, s.Date, ref.Location())
		if err != nil {
			continue
		}
		if day.Before(start) || !day.Before(end) {
			continue
		}
		key := day.Format(DayFormat)
		grouped[key] = append(grouped[key], s)
	}
	return grouped
}

// NearestWeek returns the Monday of the week holding the session closest
// to today by absolute date distance. Ties keep the earlier-listed
// session. The bool is false when no session has a parseable date.
func NearestWeek(sessions []models.Session, today time.Time) (time.Time, bool) {
	var (
		best     time.Duration
		bestDate time.Time
		found    bool
	)

	anchor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	for _, s := range sessions {
		day, err := time.ParseInLocation(DayFormat, s.Date, today.Location())
		if err != nil {
			continue
		}
		dist := day.Sub(anchor)
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < best {
			best = dist
			bestDate = day
			found = true
		}
	}

	if !found {
		return time.Time{}, false
	}
	return WeekStart(bestDate), true
}
