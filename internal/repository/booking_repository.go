package repository

import (
	"context"
	"database/sql"

	"github.com/mkarhu/sauna-booking/internal/model"
)

// BookingRepo provides CRUD operations for sauna bookings.  Dates and times
// are stored in DATE/TIME columns and formatted back to the wire forms
// (YYYY-MM-DD, HH:MM) inside the queries so the rest of the application
// only ever sees the canonical strings.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, guest_name, DATE_FORMAT(date, '%Y-%m-%d'), TIME_FORMAT(time, '%H:%i'),
       duration, room_number, people, status, created_by, created_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.GuestName, &b.Date, &b.Time,
		&b.Duration, &b.RoomNumber, &b.People, &b.Status, &b.CreatedBy, &b.CreatedAt)
}

// GetByID returns a single booking.  sql.ErrNoRows is passed through when
// no booking with the given id exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns bookings ordered by date (newest first) then start time.
// limit <= 0 disables pagination and returns every row.
func (r *BookingRepo) List(ctx context.Context, limit, offset int) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY date DESC, time ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByDate returns all bookings on the given calendar date ordered by
// start time.  The conflict detector scans this set.
func (r *BookingRepo) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE date = ? ORDER BY time ASC`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Count returns the total number of bookings.
func (r *BookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

// Create inserts a booking draft and reloads the stored row so the caller
// receives the assigned id and created_at.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	const q = `INSERT INTO bookings (guest_name, date, time, duration, room_number, people, status, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.GuestName, b.Date, b.Time, b.Duration, b.RoomNumber, b.People, b.Status, b.CreatedBy)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update applies a typed patch with a single fixed parameterized statement.
// COALESCE keeps unset fields at their current values.
func (r *BookingRepo) Update(ctx context.Context, id uint64, p model.BookingPatch) error {
	if p.IsZero() {
		return nil
	}
	const q = `UPDATE bookings SET
	       guest_name  = COALESCE(?, guest_name),
	       date        = COALESCE(?, date),
	       time        = COALESCE(?, time),
	       duration    = COALESCE(?, duration),
	       room_number = COALESCE(?, room_number),
	       people      = COALESCE(?, people),
	       status      = COALESCE(?, status)
	       WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		p.GuestName, p.Date, p.Time, p.Duration, p.RoomNumber, p.People, p.Status, id)
	return err
}

// Delete removes a booking row.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	return err
}
