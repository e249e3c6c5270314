package scheduler

import (
	"time"

	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/models"
)

// Policy sets how long before an activity its reminder fires.
type Policy struct {
	// Lead applies when more than Lead remains.
	Lead time.Duration
	// ShortLead applies when more than ShortLead but at most Lead remains.
	ShortLead time.Duration
	// Immediate is the delay used when ShortLead or less remains.
	Immediate time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Lead:      constants.DefaultLeadMinutes * time.Minute,
		ShortLead: constants.ShortLeadMinutes * time.Minute,
		Immediate: constants.ImmediateSeconds * time.Second,
	}
}

// WithLeadMinutes returns p with a user-configured lead. Values not above
// the short lead are ignored.
func (p Policy) WithLeadMinutes(n int) Policy {
	if d := time.Duration(n) * time.Minute; d > p.ShortLead {
		p.Lead = d
	}
	return p
}

// ComputeFireTime returns when the reminder for an activity on day at hhmm
// should fire, using DefaultPolicy. The result is always strictly after now.
func ComputeFireTime(day models.Day, hhmm string, now time.Time) (time.Time, bool) {
	return DefaultPolicy().FireTime(day, hhmm, now)
}

// FireTime is ComputeFireTime under p.
func (p Policy) FireTime(day models.Day, hhmm string, now time.Time) (time.Time, bool) {
	fire, _, ok := p.fireTime(day, hhmm, now)
	return fire, ok
}

// NextOccurrence returns the next start of the activity. Today counts only
// when day is today's weekday.
func NextOccurrence(day models.Day, hhmm string, now time.Time) (time.Time, bool) {
	hour, minute, err := models.ParseClock(hhmm)
	if err != nil || !day.Valid() {
		return time.Time{}, false
	}

	daysAhead := 0
	if current := now.Weekday(); day.Weekday() != current {
		daysAhead = (int(day.Weekday()) - int(current)) % 7
		if daysAhead <= 0 {
			daysAhead += 7
		}
	}

	y, m, d := now.Date()
	return time.Date(y, m, d+daysAhead, hour, minute, 0, 0, now.Location()), true
}

func (p Policy) fireTime(day models.Day, hhmm string, now time.Time) (fire, target time.Time, ok bool) {
	target, ok = NextOccurrence(day, hhmm, now)
	if !ok || !target.After(now) {
		return time.Time{}, time.Time{}, false
	}

	remaining := target.Sub(now) / time.Minute
	switch {
	case remaining > p.Lead/time.Minute:
		fire = target.Add(-p.Lead)
	case remaining > p.ShortLead/time.Minute:
		fire = target.Add(-p.ShortLead)
	default:
		fire = now.Add(p.Immediate)
	}

	if !fire.After(now) {
		return time.Time{}, time.Time{}, false
	}
	return fire, target, true
}
