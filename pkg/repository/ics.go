package repository

import (
	"errors"
	"io"
	"strings"

	ical "github.com/arran4/golang-ical"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/log"
)

// ParseICS reads an iCalendar payload and adapts its VEVENTs into the raw
// event wire shape. Malformed VEVENTs are logged and skipped so one bad
// component does not sink an import.
//
// ICS DTEND is exclusive already, so end dates pass through without the
// inclusive adjustment. VEVENTs with no DTEND at all are flagged LegacyNoEnd
// and get the repair padding when their span is resolved.
func ParseICS(r io.Reader) ([]event.RawEvent, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, E(KindServer, "parse ics", err)
	}

	out := make([]event.RawEvent, 0)
	for _, ve := range cal.Events() {
		raw, err := adaptVEvent(ve)
		if err != nil {
			log.Warn("ics: skipping vevent", "reason", err)
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

func adaptVEvent(ve *ical.VEvent) (event.RawEvent, error) {
	var raw event.RawEvent

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		raw.EventID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		raw.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		raw.Description = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return raw, errors.New("missing or bad DTSTART")
	}
	raw.EventDay = string(dateutil.FromTime(start))

	allDay := false
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			allDay = true
		}
		if !strings.Contains(p.Value, "T") {
			allDay = true
		}
	}
	if !allDay {
		raw.EventTime = start.Format("15:04")
	}

	if ve.GetProperty(ical.ComponentPropertyDtEnd) == nil {
		raw.LegacyNoEnd = true
	} else if end, err := ve.GetEndAt(); err == nil {
		raw.EventEndDay = string(dateutil.FromTime(end))
		if !allDay {
			raw.EventEndTime = end.Format("15:04")
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		raw.IsRecurring = true
		raw.RecurrencePattern = freqFromRRule(p.Value)
	}

	raw.EventType = string(event.TypeOther)
	return raw, nil
}

// freqFromRRule reduces an RRULE to the engine's coarse pattern set.
func freqFromRRule(rule string) string {
	for _, part := range strings.Split(rule, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || !strings.EqualFold(kv[0], "FREQ") {
			continue
		}
		switch strings.ToUpper(kv[1]) {
		case "DAILY":
			return string(event.RecurDaily)
		case "WEEKLY":
			return string(event.RecurWeekly)
		case "MONTHLY":
			return string(event.RecurMonthly)
		case "YEARLY":
			return string(event.RecurYearly)
		}
	}
	return string(event.RecurNone)
}
