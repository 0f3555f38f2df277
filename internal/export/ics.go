package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"backend-trainingsplan/internal/training"
)

const calendarName = "FAM Trainingsplan"

var weekdayRules = map[string]struct {
	day  time.Weekday
	rule string
}{
	"Montag":     {time.Monday, "FREQ=WEEKLY;BYDAY=MO"},
	"Dienstag":   {time.Tuesday, "FREQ=WEEKLY;BYDAY=TU"},
	"Mittwoch":   {time.Wednesday, "FREQ=WEEKLY;BYDAY=WE"},
	"Donnerstag": {time.Thursday, "FREQ=WEEKLY;BYDAY=TH"},
	"Freitag":    {time.Friday, "FREQ=WEEKLY;BYDAY=FR"},
	"Samstag":    {time.Saturday, "FREQ=WEEKLY;BYDAY=SA"},
	"Sonntag":    {time.Sunday, "FREQ=WEEKLY;BYDAY=SU"},
}

// Calendar renders trainings as weekly recurring events. Entries with an
// unknown weekday or unparsable start time are skipped rather than failing
// the whole export.
func Calendar(trainings []training.Training, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//FAM München//Trainingsplan//DE")
	cal.SetName(calendarName)

	for _, t := range trainings {
		rule, ok := weekdayRules[t.Wochentag]
		if !ok {
			continue
		}
		start, ok := parseClock(t.Von)
		if !ok {
			continue
		}

		first := nextOccurrence(now, rule.day, start)
		end := first.Add(time.Hour)
		if until, ok := parseClock(t.Bis); ok && until.after(start) {
			end = first.Add(until.sub(start))
		}

		event := cal.AddEvent(fmt.Sprintf("training-%d@fam-muenchen.de", t.ID))
		event.SetDtStampTime(now)
		event.SetStartAt(first)
		event.SetEndAt(end)
		event.AddRrule(rule.rule)
		event.SetSummary(eventSummary(t))
		if t.Ort != "" {
			event.SetLocation(t.Ort)
		}
		if desc := eventDescription(t); desc != "" {
			event.SetDescription(desc)
		}
		if t.AnmeldeLink != "" {
			event.SetURL(t.AnmeldeLink)
		}
	}

	return cal.Serialize()
}

func eventSummary(t training.Training) string {
	if t.Altersgruppe != "" {
		return t.Art + " (" + t.Altersgruppe + ")"
	}
	return t.Art
}

func eventDescription(t training.Training) string {
	var parts []string
	if t.Trainer != "" {
		parts = append(parts, "Trainer: "+t.Trainer)
	}
	if t.Probetraining {
		parts = append(parts, "Probetraining möglich")
	}
	if t.Hinweis != "" {
		parts = append(parts, t.Hinweis)
	}
	return strings.Join(parts, "\n")
}

type clock struct {
	hour, minute int
}

func (c clock) after(o clock) bool {
	return c.hour > o.hour || (c.hour == o.hour && c.minute > o.minute)
}

func (c clock) sub(o clock) time.Duration {
	return time.Duration(c.hour-o.hour)*time.Hour + time.Duration(c.minute-o.minute)*time.Minute
}

func parseClock(s string) (clock, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(s, "Uhr"))
	s = strings.TrimSpace(s)
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return clock{}, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return clock{}, false
	}
	return clock{hour: h, minute: m}, true
}

// nextOccurrence finds the next date with the given weekday at the given
// start time, counting today when the slot is still ahead.
func nextOccurrence(now time.Time, day time.Weekday, start clock) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), start.hour, start.minute, 0, 0, now.Location())
	offset := (int(day) - int(now.Weekday()) + 7) % 7
	candidate = candidate.AddDate(0, 0, offset)
	if offset == 0 && candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}
