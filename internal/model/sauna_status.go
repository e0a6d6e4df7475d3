package model

import "time"

// Sauna statuses.  Exactly one logical current status exists at any time;
// the sauna_status table is an append-only log and the current row is the
// one with the highest id.
const (
	SaunaAvailable  = "available"
	SaunaBusy       = "busy"
	SaunaOutOfOrder = "out_of_order"
)

// SaunaStatus is the derived state of the physical sauna.
//
// Invariants:
//  status == busy         => BookingID is set and refers to an in_use booking.
//  status == out_of_order => Reason is non-empty.
type SaunaStatus struct {
	ID        uint64    `json:"id"`                   // sauna_status.id
	Status    string    `json:"status"`               // sauna_status.status
	Reason    *string   `json:"reason,omitempty"`     // sauna_status.reason (nullable)
	BookingID *uint64   `json:"booking_id,omitempty"` // sauna_status.booking_id (nullable)
	UpdatedAt time.Time `json:"updated_at"`           // sauna_status.updated_at

	// Booking is populated on reads when BookingID is set; it is not a
	// column of the sauna_status table.
	Booking *Booking `json:"booking,omitempty"`
}

// ValidSaunaStatus reports whether s is one of the sauna states.
func ValidSaunaStatus(s string) bool {
	return s == SaunaAvailable || s == SaunaBusy || s == SaunaOutOfOrder
}
