// Package interval holds the calendar-date primitives shared by the
// availability check and the pricing calculator. Reservations span whole
// calendar days; time-of-day is normalized away here but preserved on the
// reservation itself for delivery and pickup scheduling.
package interval

import (
	"time"

	"rentdesk/internal/apperrors"
)

// Normalize strips the time-of-day component, leaving midnight UTC of the
// same calendar date.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DurationInclusiveDays returns the number of calendar days spanning both
// endpoints. A same-day reservation counts as 1 day.
func DurationInclusiveDays(start, end time.Time) int {
	s := Normalize(start)
	e := Normalize(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// Overlaps reports whether two inclusive calendar-day intervals share at
// least one day: start1 <= end2 AND start2 <= end1. Callers are expected to
// have rejected inverted intervals already.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	as, ae := Normalize(aStart), Normalize(aEnd)
	bs, be := Normalize(bStart), Normalize(bEnd)
	return !as.After(be) && !bs.After(ae)
}

// Validate rejects intervals whose end date falls strictly before the start
// date. Same-day intervals are valid.
func Validate(start, end time.Time) error {
	if Normalize(end).Before(Normalize(start)) {
		return apperrors.Validation("end date must not be before start date")
	}
	return nil
}
