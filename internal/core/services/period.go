package services

import "time"

// Report and VAT periods arrive at day granularity, but journal and document
// dates are full timestamps. The helpers below convert an inclusive
// calendar-day range into the half-open timestamp range the repositories
// query with, so activity late on the final day still counts.

// dayStartUTC returns midnight UTC of t's calendar day.
func dayStartUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// dayEndExclusiveUTC returns midnight UTC of the day after t's calendar day.
func dayEndExclusiveUTC(t time.Time) time.Time {
	return dayStartUTC(t).AddDate(0, 0, 1)
}
