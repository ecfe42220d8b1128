package calendar

import (
	"fmt"
	"strconv"
	"time"

	"github.com/teambition/rrule-go"

	"agenda-api/models"
)

// Safety cap so a malformed rule cannot expand without bound.
const maxOccurrencesPerEvent = 1000

// ExpandOccurrences materializes the events visible in [rangeStart, rangeEnd].
// Non-recurring events pass through when they intersect the range. Recurring
// events are expanded into virtual occurrence copies whose ParentEventID
// points at the stored event; occurrences are never persisted.
func ExpandOccurrences(events []models.Event, rangeStart, rangeEnd time.Time) []models.Event {
	out := make([]models.Event, 0, len(events))

	for _, ev := range events {
		if ev.RecurrenceType == models.RecurrenceNone || ev.RecurrenceType == "" {
			if !ev.StartTime.After(rangeEnd) && !ev.EndTime.Before(rangeStart) {
				out = append(out, ev)
			}
			continue
		}
		out = append(out, expandRecurringEvent(ev, rangeStart, rangeEnd)...)
	}

	return out
}

func expandRecurringEvent(ev models.Event, rangeStart, rangeEnd time.Time) []models.Event {
	r, err := ruleForEvent(ev)
	if err != nil {
		// An unexpandable descriptor degrades to the base event.
		if !ev.StartTime.After(rangeEnd) && !ev.EndTime.Before(rangeStart) {
			return []models.Event{ev}
		}
		return nil
	}

	duration := ev.EndTime.Sub(ev.StartTime)

	// Widen the window so occurrences that start before the range but
	// overlap into it are still found.
	starts := r.Between(rangeStart.Add(-duration), rangeEnd, true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	occurrences := make([]models.Event, 0, len(starts))
	for _, start := range starts {
		end := start.Add(duration)
		if start.After(rangeEnd) || end.Before(rangeStart) {
			continue
		}

		occ := ev
		occ.StartTime = start
		occ.EndTime = end
		if !start.Equal(ev.StartTime) {
			parentID := ev.ID
			occ.ID = fmt.Sprintf("%s@%s", ev.ID, start.Format(time.RFC3339))
			occ.ParentEventID = &parentID
		}
		occurrences = append(occurrences, occ)
	}

	return occurrences
}

// RRuleString renders the event's recurrence descriptor as an iCalendar
// RRULE value, for feeds that carry the rule instead of expanded
// occurrences. ok is false when the event does not recur or the
// descriptor cannot be expressed as a rule.
func RRuleString(ev models.Event) (string, bool) {
	if ev.RecurrenceType == models.RecurrenceNone || ev.RecurrenceType == "" {
		return "", false
	}
	r, err := ruleForEvent(ev)
	if err != nil {
		return "", false
	}
	return r.OrigOptions.RRuleString(), true
}

func ruleForEvent(ev models.Event) (*rrule.RRule, error) {
	opt := rrule.ROption{
		Dtstart:  ev.StartTime,
		Interval: ev.RecurrenceInterval,
	}
	if opt.Interval < 1 {
		opt.Interval = 1
	}

	switch ev.RecurrenceType {
	case models.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case models.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = parseWeekdays(ev.RecurrenceWeekdays)
	case models.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
		if ev.RecurrenceMonthDay > 0 {
			opt.Bymonthday = []int{ev.RecurrenceMonthDay}
		}
	case models.RecurrenceYearly:
		opt.Freq = rrule.YEARLY
	default:
		return nil, fmt.Errorf("unknown recurrence type %q", ev.RecurrenceType)
	}

	if ev.RecurrenceUntil != nil {
		opt.Until = *ev.RecurrenceUntil
	}

	return rrule.NewRRule(opt)
}

// parseWeekdays maps the stored 0=Sunday..6=Saturday strings to rrule
// weekdays. Unparseable entries are skipped.
func parseWeekdays(days models.StringSlice) []rrule.Weekday {
	table := []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

	var out []rrule.Weekday
	for _, s := range days {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		out = append(out, table[n])
	}
	return out
}
