package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mkarhu/sauna-booking/internal/model"
	"github.com/mkarhu/sauna-booking/internal/queue"
)

// BookingStore is the persistence abstraction for bookings.  It is
// satisfied by repository.BookingRepo and by the mocks in the tests.
type BookingStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	List(ctx context.Context, limit, offset int) ([]model.Booking, error)
	ListByDate(ctx context.Context, date string) ([]model.Booking, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, b *model.Booking) (*model.Booking, error)
	Update(ctx context.Context, id uint64, p model.BookingPatch) error
	Delete(ctx context.Context, id uint64) error
}

// SaunaStatusStore is the persistence abstraction for the sauna status log.
type SaunaStatusStore interface {
	Current(ctx context.Context) (*model.SaunaStatus, error)
	Append(ctx context.Context, status string, reason *string, bookingID *uint64) (*model.SaunaStatus, error)
}

// EventPublisher emits booking lifecycle events to the message broker.
// Publishing is best-effort; failures never fail the request.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event queue.BookingEvent) error
}

// BookingService orchestrates validation, conflict detection, persistence
// and the sauna-status side effects of booking lifecycle transitions.
type BookingService struct {
	bookings BookingStore
	sauna    SaunaStatusStore
	events   EventPublisher // may be nil; disables event publishing
}

// NewBookingService constructs a BookingService over the given stores.
func NewBookingService(bookings BookingStore, sauna SaunaStatusStore, events EventPublisher) *BookingService {
	if bookings == nil || sauna == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{bookings: bookings, sauna: sauna, events: events}
}

// BookingPage is a paginated list of bookings.
type BookingPage struct {
	Data       []model.Booking `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// Create validates the payload, checks the candidate slot against the
// sauna status and the day's occupying bookings, and persists the draft.
// createdBy overrides the guest marker when the caller is authenticated.
//
// The scan-then-insert sequence is not serialized against concurrent
// creates; closing that window needs a serializable transaction or a
// uniqueness constraint on (date, interval).
func (s *BookingService) Create(ctx context.Context, payload map[string]any, createdBy string) (*model.Booking, error) {
	draft, err := validateBooking(payload)
	if err != nil {
		return nil, err
	}
	if createdBy != "" {
		draft.CreatedBy = createdBy
	}

	if err := s.checkConflicts(ctx, draft); err != nil {
		return nil, err
	}

	stored, err := s.bookings.Create(ctx, draft)
	if err != nil {
		return nil, storagef("create booking", err)
	}
	s.publish(ctx, queue.EventBookingCreated, stored)
	return stored, nil
}

// Get returns a single booking.
func (s *BookingService) Get(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Msg: "Booking not found"}
	}
	if err != nil {
		return nil, storagef("load booking", err)
	}
	return b, nil
}

// List returns bookings with offset/limit pagination metadata.  limit <= 0
// returns every booking with has_more false.
func (s *BookingService) List(ctx context.Context, limit, offset int) (*BookingPage, error) {
	total, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, storagef("count bookings", err)
	}
	items, err := s.bookings.List(ctx, limit, offset)
	if err != nil {
		return nil, storagef("list bookings", err)
	}
	return &BookingPage{Data: items, Pagination: paginate(total, limit, offset)}, nil
}

// Update applies a typed patch to a booking and keeps the sauna status in
// step with status transitions: in_use marks the sauna busy with this
// booking; completed or cancelled releases it, but only when the sauna is
// busy with this very booking.  The side effects run only when the payload
// includes a status field.
func (s *BookingService) Update(ctx context.Context, id uint64, data map[string]any) (*model.Booking, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	patch, err := bookingPatchFrom(data)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, id, patch); err != nil {
		return nil, storagef("update booking", err)
	}

	if patch.Status != nil {
		if err := s.syncSaunaStatus(ctx, id, *patch.Status); err != nil {
			return nil, err
		}
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, queue.EventBookingStatusChanged, updated)
	return updated, nil
}

// syncSaunaStatus applies the status-consistency rule after a booking
// status transition.
func (s *BookingService) syncSaunaStatus(ctx context.Context, id uint64, newStatus string) error {
	switch newStatus {
	case model.BookingStatusInUse:
		if _, err := s.sauna.Append(ctx, model.SaunaBusy, nil, &id); err != nil {
			return storagef("update sauna status", err)
		}
	case model.BookingStatusCompleted, model.BookingStatusCancelled:
		cur, err := s.sauna.Current(ctx)
		if err != nil {
			return storagef("load sauna status", err)
		}
		if cur != nil && cur.Status == model.SaunaBusy && cur.BookingID != nil && *cur.BookingID == id {
			if _, err := s.sauna.Append(ctx, model.SaunaAvailable, nil, nil); err != nil {
				return storagef("update sauna status", err)
			}
		}
	}
	return nil
}

// Delete removes a booking unless the sauna is currently occupied by it.
func (s *BookingService) Delete(ctx context.Context, id uint64) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	cur, err := s.sauna.Current(ctx)
	if err != nil {
		return storagef("load sauna status", err)
	}
	if cur != nil && cur.Status == model.SaunaBusy && cur.BookingID != nil && *cur.BookingID == id {
		return &ConflictError{Msg: "Cannot delete booking that is currently in progress"}
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return storagef("delete booking", err)
	}
	s.publish(ctx, queue.EventBookingDeleted, b)
	return nil
}

// checkConflicts admits or rejects a candidate booking.  An out-of-order
// sauna rejects everything; otherwise the candidate interval is compared
// against every occupying (active or in_use) booking on the same date.
// Touching intervals are admitted.
func (s *BookingService) checkConflicts(ctx context.Context, draft *model.Booking) error {
	cur, err := s.sauna.Current(ctx)
	if err != nil {
		return storagef("load sauna status", err)
	}
	if cur != nil && cur.Status == model.SaunaOutOfOrder {
		reason := ""
		if cur.Reason != nil {
			reason = *cur.Reason
		}
		return &ConflictError{Msg: "Sauna is currently out of order: " + reason}
	}

	candStart, candEnd, err := timeRange(draft.Date, draft.Time, draft.Duration)
	if err != nil {
		return validationf("Invalid date format. Use YYYY-MM-DD")
	}

	sameDay, err := s.bookings.ListByDate(ctx, draft.Date)
	if err != nil {
		return storagef("list bookings for date", err)
	}
	for _, existing := range sameDay {
		if !existing.OccupiesSlot() {
			continue
		}
		exStart, exEnd, err := timeRange(existing.Date, existing.Time, existing.Duration)
		if err != nil {
			return storagef("parse stored booking interval", err)
		}
		if overlaps(candStart, candEnd, exStart, exEnd) {
			return &ConflictError{Msg: "Time slot conflict with existing booking"}
		}
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, kind string, b *model.Booking) {
	if s.events == nil || b == nil {
		return
	}
	_ = s.events.PublishBookingEvent(ctx, queue.BookingEvent{
		Kind:       kind,
		BookingID:  b.ID,
		GuestName:  b.GuestName,
		Date:       b.Date,
		Time:       b.Time,
		Duration:   b.Duration,
		Status:     b.Status,
		CreatedBy:  b.CreatedBy,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
