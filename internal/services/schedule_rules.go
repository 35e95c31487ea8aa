package services

import "time"

// ScheduleBuffer pads both ends of a flight's departure/arrival window
// when checking same-airplane conflicts: two flights on one airplane
// must be at least this far apart.
const ScheduleBuffer = time.Hour

// CancellationCutoff is the window before departure during which a
// reservation can no longer be cancelled (until the flight has passed).
const CancellationCutoff = 60 * time.Minute

// ConflictWindow returns [departure-buffer, arrival+buffer].
func ConflictWindow(departure, arrival time.Time) (time.Time, time.Time) {
	return departure.Add(-ScheduleBuffer), arrival.Add(ScheduleBuffer)
}

// FlightPassed reports whether the flight is over: it counts as passed
// once its arrival time is reached.
func FlightPassed(arrival, now time.Time) bool {
	return !now.Before(arrival)
}

// DepartsWithin reports whether departure lies between now and
// now+threshold inclusive. A flight already departed is not imminent.
func DepartsWithin(departure, now time.Time, threshold time.Duration) bool {
	remaining := departure.Sub(now)
	return remaining >= 0 && remaining <= threshold
}
