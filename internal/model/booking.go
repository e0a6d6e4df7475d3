package model

import "time"

// Booking statuses.  A booking is created as active, moves to in_use when a
// guest enters the sauna, and ends as completed or cancelled.  Only active
// and in_use bookings occupy their time slot for conflict purposes.
const (
	BookingStatusActive    = "active"
	BookingStatusInUse     = "in_use"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// CreatedByGuest marks bookings entered without an authenticated session.
const CreatedByGuest = "guest"

// Booking records a claim on the sauna for a date, start time and duration.
//
// Fields:
//  ID         – primary key identifier.
//  GuestName  – name of the guest the slot is held for.
//  Date       – calendar date in YYYY-MM-DD form.
//  Time       – start time of day in 24-hour HH:MM form.
//  Duration   – whole hours the slot lasts (1–3).
//  RoomNumber – guest's hotel room.
//  People     – party size (1–6).
//  Status     – lifecycle state (active, in_use, completed, cancelled).
//  CreatedBy  – username of the staff member who entered the booking, or
//               "guest" for unauthenticated self-service bookings.
//  CreatedAt  – creation timestamp.
type Booking struct {
	ID         uint64    `json:"id"`          // bookings.id
	GuestName  string    `json:"guest_name"`  // bookings.guest_name
	Date       string    `json:"date"`        // bookings.date
	Time       string    `json:"time"`        // bookings.time
	Duration   int       `json:"duration"`    // bookings.duration
	RoomNumber int       `json:"room_number"` // bookings.room_number
	People     int       `json:"people"`      // bookings.people
	Status     string    `json:"status"`      // bookings.status
	CreatedBy  string    `json:"created_by"`  // bookings.created_by
	CreatedAt  time.Time `json:"created_at"`  // bookings.created_at
}

// OccupiesSlot reports whether the booking still counts in overlap checks.
// Completed and cancelled bookings stay queryable but no longer occupy
// their interval; in_use bookings do, since the sauna is physically taken.
func (b Booking) OccupiesSlot() bool {
	return b.Status == BookingStatusActive || b.Status == BookingStatusInUse
}

// ValidBookingStatus reports whether s is one of the booking lifecycle states.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusActive, BookingStatusInUse, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}
