package model

// BookingPatch enumerates the updatable booking fields.  Each field is
// optional; nil means "leave unchanged".  Translating the patch into one
// fixed parameterized statement keeps the set of mutable columns a
// compile-time contract instead of being driven by whatever keys arrive
// in the request body.
type BookingPatch struct {
	GuestName  *string
	Date       *string
	Time       *string
	Duration   *int
	RoomNumber *int
	People     *int
	Status     *string
}

// IsZero reports whether the patch carries no changes.
func (p BookingPatch) IsZero() bool {
	return p.GuestName == nil && p.Date == nil && p.Time == nil &&
		p.Duration == nil && p.RoomNumber == nil && p.People == nil && p.Status == nil
}

// UserPatch enumerates the updatable account fields (password changes go
// through their own dedicated operations).
type UserPatch struct {
	Username *string
	Role     *string
}

// ProductPatch enumerates the updatable catalog fields.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURL    *string
}
