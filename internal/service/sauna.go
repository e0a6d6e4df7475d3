package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mkarhu/sauna-booking/internal/model"
)

// SaunaService exposes the sauna status rule: reading the current
// projection and applying explicit status changes.
type SaunaService struct {
	sauna    SaunaStatusStore
	bookings BookingStore
}

// NewSaunaService constructs a SaunaService over the given stores.
func NewSaunaService(sauna SaunaStatusStore, bookings BookingStore) *SaunaService {
	if sauna == nil || bookings == nil {
		panic("nil store passed to NewSaunaService")
	}
	return &SaunaService{sauna: sauna, bookings: bookings}
}

// Current returns the latest status row.  When the log is still empty the
// sauna is reported available.  When the row references a booking the
// booking is embedded for the caller's convenience.
func (s *SaunaService) Current(ctx context.Context) (*model.SaunaStatus, error) {
	cur, err := s.sauna.Current(ctx)
	if err != nil {
		return nil, storagef("load sauna status", err)
	}
	if cur == nil {
		return &model.SaunaStatus{Status: model.SaunaAvailable}, nil
	}
	if cur.BookingID != nil {
		b, err := s.bookings.GetByID(ctx, *cur.BookingID)
		if err == nil {
			cur.Booking = b
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, storagef("load status booking", err)
		}
	}
	return cur, nil
}

// SetStatus validates and appends a new current status.
//
// Rules, first violation wins: status must be one of the three sauna
// states; busy requires a booking id; out_of_order requires a reason.
// When a booking id is given it must reference an existing booking, and
// that booking is marked in_use as a side effect.
func (s *SaunaService) SetStatus(ctx context.Context, status string, reason *string, bookingID *uint64) (*model.SaunaStatus, error) {
	if !model.ValidSaunaStatus(status) {
		return nil, &ValidationError{Msg: "Invalid status. Must be one of: available, busy, out_of_order"}
	}
	if status == model.SaunaBusy && bookingID == nil {
		return nil, &ValidationError{Msg: "Booking ID is required when status is busy"}
	}
	if status == model.SaunaOutOfOrder && (reason == nil || *reason == "") {
		return nil, &ValidationError{Msg: "Reason is required when status is out_of_order"}
	}

	if bookingID != nil {
		if _, err := s.bookings.GetByID(ctx, *bookingID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, &NotFoundError{Msg: "Booking not found"}
			}
			return nil, storagef("load booking", err)
		}
		inUse := model.BookingStatusInUse
		if err := s.bookings.Update(ctx, *bookingID, model.BookingPatch{Status: &inUse}); err != nil {
			return nil, storagef("mark booking in_use", err)
		}
	}

	stored, err := s.sauna.Append(ctx, status, reason, bookingID)
	if err != nil {
		return nil, storagef("append sauna status", err)
	}
	return stored, nil
}
