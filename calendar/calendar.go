// Package calendar builds month grids and assigns events to the days they
// span. It is pure date arithmetic; persistence and visibility filtering
// happen before events reach it.
package calendar

import (
	"time"

	"agenda-api/models"
)

// Day is one cell of a month grid.
type Day struct {
	Date    time.Time      `json:"date"`
	InMonth bool           `json:"in_month"`
	IsToday bool           `json:"is_today"`
	Events  []models.Event `json:"events"`
}

// BuildMonthGrid returns the full grid of days for the given month: it
// starts at the week-aligned boundary on or before the 1st and ends at the
// week-aligned boundary on or after the last day, so the result length is
// always a multiple of 7.
func BuildMonthGrid(year int, month time.Month, weekStart time.Weekday) []Day {
	return buildMonthGrid(year, month, weekStart, time.Now())
}

func buildMonthGrid(year int, month time.Month, weekStart time.Weekday, now time.Time) []Day {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	gridStart := startOfWeek(first, weekStart)
	gridEnd := startOfWeek(last, weekStart).AddDate(0, 0, 6)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var days []Day
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:    d,
			InMonth: d.Month() == month,
			IsToday: d.Equal(today),
			Events:  []models.Event{},
		})
	}
	return days
}

// startOfWeek returns the most recent weekStart on or before d, at midnight.
func startOfWeek(d time.Time, weekStart time.Weekday) time.Time {
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	d = d.AddDate(0, 0, -back)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// AssignEvents places each event on every day it intersects. A day is the
// half-open interval [date, date+24h): an event lands on it when
// start < date+24h and end >= date, so multi-day and all-day events appear
// on every day they span. Within a day, events keep their input order.
func AssignEvents(days []Day, events []models.Event) []Day {
	for i := range days {
		dayStart := days[i].Date
		dayEnd := dayStart.AddDate(0, 0, 1)

		for _, ev := range events {
			if ev.StartTime.Before(dayEnd) && !ev.EndTime.Before(dayStart) {
				days[i].Events = append(days[i].Events, ev)
			}
		}
	}
	return days
}
