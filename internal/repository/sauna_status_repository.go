package repository

import (
	"context"
	"database/sql"

	"github.com/mkarhu/sauna-booking/internal/model"
)

// SaunaStatusRepo persists the sauna status projection.  The table is an
// append-only log: every change inserts a new row and the current status is
// the row with the highest id, which keeps a full audit trail of resource
// state changes.
type SaunaStatusRepo struct {
	db *sql.DB
}

// NewSaunaStatusRepo returns a SaunaStatusRepo bound to the given database.
func NewSaunaStatusRepo(db *sql.DB) *SaunaStatusRepo { return &SaunaStatusRepo{db: db} }

// Current returns the most recent status row, or nil when the log is empty
// (a fresh install before the available row is seeded).
func (r *SaunaStatusRepo) Current(ctx context.Context) (*model.SaunaStatus, error) {
	const q = `SELECT id, status, reason, booking_id, updated_at
	           FROM sauna_status ORDER BY id DESC LIMIT 1`
	var (
		s         model.SaunaStatus
		reason    sql.NullString
		bookingID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q).Scan(&s.ID, &s.Status, &reason, &bookingID, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		v := reason.String
		s.Reason = &v
	}
	if bookingID.Valid {
		v := uint64(bookingID.Int64)
		s.BookingID = &v
	}
	return &s, nil
}

// Append writes a new status row, superseding the previous one, and returns
// the stored row.
func (r *SaunaStatusRepo) Append(ctx context.Context, status string, reason *string, bookingID *uint64) (*model.SaunaStatus, error) {
	const q = `INSERT INTO sauna_status (status, reason, booking_id) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, status, reason, bookingID); err != nil {
		return nil, err
	}
	return r.Current(ctx)
}
