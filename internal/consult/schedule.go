package consult

import "time"

// ComputeAppointment derives the consultation slot from the booking time.
// Bookings on a Sunday, or after 16:00, roll to the next day; the slot is
// then one hour after the 09:00 opening.  The day is shifted at most once.
func ComputeAppointment(now time.Time) time.Time {
	if now.Weekday() == time.Sunday {
		now = now.AddDate(0, 0, 1)
	} else if now.Hour() >= 16 {
		now = now.AddDate(0, 0, 1)
	}
	opening := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
	return opening.Add(time.Hour)
}
