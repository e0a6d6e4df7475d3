package service

import "time"

// timeRange converts a booking's (date, time, duration-hours) into the
// half-open interval [start, start+duration) in UTC.  Date must be
// YYYY-MM-DD and clock HH:MM; both are validated upstream, so a parse
// failure here means a corrupt row rather than bad input.
func timeRange(date, clock string, durationHours int) (start, end time.Time, err error) {
	start, err = time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = start.Add(time.Duration(durationHours) * time.Hour)
	return start, end, nil
}

// overlaps reports whether two half-open intervals intersect.  Touching
// intervals (end1 == start2) do not overlap, so back-to-back bookings are
// admitted.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
