package civiltime

import "time"

// Clock converts absolute instants to wall-clock time in a fixed civil
// timezone offset. The content provider publishes on a Moscow schedule, so
// freshness math has to happen in that offset regardless of where the
// process runs.
type Clock struct {
	offset time.Duration
}

// NewClock creates a clock for a fixed UTC offset in whole hours.
func NewClock(offsetHours int) Clock {
	return Clock{offset: time.Duration(offsetHours) * time.Hour}
}

// Civil returns t shifted into the clock's civil timezone. The result is
// labeled UTC; only the wall-clock fields are meaningful.
func (c Clock) Civil(t time.Time) time.Time {
	return t.UTC().Add(c.offset)
}

// Hour returns the civil hour of day for t.
func (c Clock) Hour(t time.Time) int {
	return c.Civil(t).Hour()
}

// Within reports whether t falls inside the civil hour window
// [startHour, endHour).
func (c Clock) Within(startHour, endHour int, t time.Time) bool {
	h := c.Hour(t)
	return h >= startHour && h < endHour
}

// Next returns the next absolute instant at which the civil wall clock
// reads hour:minute. If that time has already passed today it rolls over
// to tomorrow.
func (c Clock) Next(hour, minute int, t time.Time) time.Time {
	civil := c.Civil(t)
	target := time.Date(civil.Year(), civil.Month(), civil.Day(), hour, minute, 0, 0, time.UTC)
	if !target.After(civil) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Add(-c.offset)
}

// Boundary returns the absolute instant of hour:00 on t's civil day.
// Unlike Next it does not roll over, so the result may lie before t.
func (c Clock) Boundary(hour int, t time.Time) time.Time {
	civil := c.Civil(t)
	target := time.Date(civil.Year(), civil.Month(), civil.Day(), hour, 0, 0, 0, time.UTC)
	return target.Add(-c.offset)
}
