package service

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mkarhu/sauna-booking/internal/model"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// 24-hour clock; a single-digit hour is tolerated and normalized later.
	clockRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// requiredBookingFields in the order their absence is reported.
var requiredBookingFields = []string{"guest_name", "date", "time", "room_number", "people"}

// validateBooking checks a raw reservation payload against the booking
// rules and returns a normalized draft.  Rules run in a fixed order and
// the first violation wins:
//
//  1. presence of guest_name, date, time, room_number, people;
//  2. date/time formats and numeric room_number;
//  3. people within 1–6 and, when supplied, duration within 1–3.
//
// Unspecified fields keep their defaults: duration 1, status active,
// created_by "guest".  The check is pure; nothing is persisted.
func validateBooking(payload map[string]any) (*model.Booking, error) {
	for _, f := range requiredBookingFields {
		if !fieldPresent(payload, f) {
			return nil, validationf("Missing required field: %s", f)
		}
	}

	date := stringField(payload, "date")
	if !dateRe.MatchString(date) {
		return nil, &ValidationError{Msg: "Invalid date format. Use YYYY-MM-DD"}
	}
	clock := stringField(payload, "time")
	if !clockRe.MatchString(clock) {
		return nil, &ValidationError{Msg: "Invalid time format. Use HH:MM in 24-hour format"}
	}
	room, ok := intField(payload, "room_number")
	if !ok {
		return nil, &ValidationError{Msg: "Room number must be numeric"}
	}

	people, ok := intField(payload, "people")
	if !ok || people < 1 || people > 6 {
		return nil, &ValidationError{Msg: "Number of people must be between 1 and 6"}
	}
	duration := 1
	if v, exists := payload["duration"]; exists && v != nil {
		d, ok := intValue(v)
		if !ok || d < 1 || d > 3 {
			return nil, &ValidationError{Msg: "Duration must be between 1 and 3 hours"}
		}
		duration = d
	}

	return &model.Booking{
		GuestName:  stringField(payload, "guest_name"),
		Date:       date,
		Time:       padClock(clock),
		Duration:   duration,
		RoomNumber: room,
		People:     people,
		Status:     model.BookingStatusActive,
		CreatedBy:  model.CreatedByGuest,
	}, nil
}

// bookingPatchFrom validates the fields present in an update payload and
// converts them into a typed patch.  Fields absent from the payload stay
// nil and are left untouched by the store.
func bookingPatchFrom(data map[string]any) (model.BookingPatch, error) {
	var p model.BookingPatch
	if v, ok := data["guest_name"]; ok && v != nil {
		name := strings.TrimSpace(stringValue(v))
		if name == "" {
			return p, validationf("Missing required field: %s", "guest_name")
		}
		p.GuestName = &name
	}
	if v, ok := data["date"]; ok && v != nil {
		date := stringValue(v)
		if !dateRe.MatchString(date) {
			return p, &ValidationError{Msg: "Invalid date format. Use YYYY-MM-DD"}
		}
		p.Date = &date
	}
	if v, ok := data["time"]; ok && v != nil {
		clock := stringValue(v)
		if !clockRe.MatchString(clock) {
			return p, &ValidationError{Msg: "Invalid time format. Use HH:MM in 24-hour format"}
		}
		padded := padClock(clock)
		p.Time = &padded
	}
	if v, ok := data["room_number"]; ok && v != nil {
		room, ok := intValue(v)
		if !ok {
			return p, &ValidationError{Msg: "Room number must be numeric"}
		}
		p.RoomNumber = &room
	}
	if v, ok := data["people"]; ok && v != nil {
		people, ok := intValue(v)
		if !ok || people < 1 || people > 6 {
			return p, &ValidationError{Msg: "Number of people must be between 1 and 6"}
		}
		p.People = &people
	}
	if v, ok := data["duration"]; ok && v != nil {
		d, ok := intValue(v)
		if !ok || d < 1 || d > 3 {
			return p, &ValidationError{Msg: "Duration must be between 1 and 3 hours"}
		}
		p.Duration = &d
	}
	if v, ok := data["status"]; ok && v != nil {
		status := stringValue(v)
		if !model.ValidBookingStatus(status) {
			return p, &ValidationError{Msg: "Invalid status. Must be one of: active, in_use, completed, cancelled"}
		}
		p.Status = &status
	}
	return p, nil
}

// fieldPresent reports whether a required field carries a usable value.
// Missing keys, nils and blank strings all count as absent.
func fieldPresent(payload map[string]any, key string) bool {
	v, ok := payload[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

func stringField(payload map[string]any, key string) string {
	return stringValue(payload[key])
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func intField(payload map[string]any, key string) (int, bool) {
	return intValue(payload[key])
}

// intValue coerces a JSON value into a whole number.  Clients send
// room_number and friends both as numbers and as numeric strings, so both
// forms are accepted; fractional values are rejected.
func intValue(v any) (int, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case json.Number:
		var err error
		if f, err = t.Float64(); err != nil {
			return 0, false
		}
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(t), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// padClock normalizes a single-digit hour ("9:30") to two digits ("09:30").
func padClock(clock string) string {
	if len(clock) == 4 {
		return "0" + clock
	}
	return clock
}
