// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an activity log.
package queue

// Booking event kinds published to the booking.events queue.
const (
	EventBookingCreated       = "created"
	EventBookingStatusChanged = "status_changed"
	EventBookingDeleted       = "deleted"
)

// BookingEvent is published whenever a booking is created, changes status
// or is deleted.  It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type BookingEvent struct {
	Kind       string `json:"kind"`
	BookingID  uint64 `json:"booking_id"`
	GuestName  string `json:"guest_name,omitempty"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Status     string `json:"status,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
