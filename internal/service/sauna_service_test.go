package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkarhu/sauna-booking/internal/model"
)

func newSaunaFixture(t *testing.T) (*SaunaService, *memBookingStore, *memSaunaStore) {
	t.Helper()
	bookings := newMemBookingStore()
	sauna := &memSaunaStore{}
	return NewSaunaService(sauna, bookings), bookings, sauna
}

func TestCurrentStatusEmptyLogIsAvailable(t *testing.T) {
	svc, _, _ := newSaunaFixture(t)
	cur, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, model.SaunaAvailable, cur.Status)
	assert.Nil(t, cur.BookingID)
}

func TestCurrentStatusEmbedsBooking(t *testing.T) {
	svc, bookings, sauna := newSaunaFixture(t)
	b, err := bookings.Create(context.Background(), &model.Booking{
		GuestName: "Aino Virtanen", Date: "2025-07-01", Time: "10:00",
		Duration: 1, RoomNumber: 12, People: 2,
		Status: model.BookingStatusInUse, CreatedBy: model.CreatedByGuest,
	})
	require.NoError(t, err)
	_, err = sauna.Append(context.Background(), model.SaunaBusy, nil, &b.ID)
	require.NoError(t, err)

	cur, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cur.Booking)
	assert.Equal(t, b.ID, cur.Booking.ID)
	assert.Equal(t, "Aino Virtanen", cur.Booking.GuestName)
}

func TestSetStatusValidation(t *testing.T) {
	id := uint64(1)
	reason := "maintenance"
	cases := []struct {
		name      string
		status    string
		reason    *string
		bookingID *uint64
		wantErr   string
	}{
		{"unknown status", "closed", nil, nil, "Invalid status. Must be one of: available, busy, out_of_order"},
		{"busy without booking", "busy", nil, nil, "Booking ID is required when status is busy"},
		{"out of order without reason", "out_of_order", nil, nil, "Reason is required when status is out_of_order"},
		{"out of order blank reason", "out_of_order", strPtr(""), nil, "Reason is required when status is out_of_order"},
		{"busy with missing booking", "busy", &reason, &id, "Booking not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newSaunaFixture(t)
			_, err := svc.SetStatus(context.Background(), tc.status, tc.reason, tc.bookingID)
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, errMessage(err))
		})
	}
}

func TestSetStatusBusyMarksBookingInUse(t *testing.T) {
	svc, bookings, sauna := newSaunaFixture(t)
	b, err := bookings.Create(context.Background(), &model.Booking{
		GuestName: "Aino Virtanen", Date: "2025-07-01", Time: "10:00",
		Duration: 1, RoomNumber: 12, People: 2,
		Status: model.BookingStatusActive, CreatedBy: model.CreatedByGuest,
	})
	require.NoError(t, err)

	cur, err := svc.SetStatus(context.Background(), model.SaunaBusy, nil, &b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaunaBusy, cur.Status)
	require.NotNil(t, cur.BookingID)
	assert.Equal(t, b.ID, *cur.BookingID)

	reloaded, err := bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusInUse, reloaded.Status)

	latest, err := sauna.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SaunaBusy, latest.Status)
}

func TestSetStatusOutOfOrder(t *testing.T) {
	svc, _, _ := newSaunaFixture(t)
	reason := "broken heater"
	cur, err := svc.SetStatus(context.Background(), model.SaunaOutOfOrder, &reason, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SaunaOutOfOrder, cur.Status)
	require.NotNil(t, cur.Reason)
	assert.Equal(t, "broken heater", *cur.Reason)
}

// The log is append-only: setting a status never rewrites earlier rows,
// it appends and the newest row wins.
func TestSetStatusAppendsToLog(t *testing.T) {
	bookings := newMemBookingStore()
	sauna := &mockSaunaStore{}
	svc := NewSaunaService(sauna, bookings)

	sauna.On("Append", mock.Anything, model.SaunaAvailable, (*string)(nil), (*uint64)(nil)).
		Return(&model.SaunaStatus{ID: 3, Status: model.SaunaAvailable}, nil).Once()

	cur, err := svc.SetStatus(context.Background(), model.SaunaAvailable, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cur.ID)
	sauna.AssertExpectations(t)
}

func strPtr(s string) *string { return &s }

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
