package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkarhu/sauna-booking/internal/service"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List handles GET /bookings with optional limit/offset pagination.
func (h *BookingHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.bookings.List(ctx, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid booking ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.bookings.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Create handles POST /bookings.  The endpoint accepts guest bookings;
// when the caller is authenticated the booking is attributed to their
// username instead of the guest marker.
func (h *BookingHandler) Create(c echo.Context) error {
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}
	createdBy, _ := c.Get("username").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.bookings.Create(ctx, data, createdBy)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Update handles PUT /bookings/:id and returns the reloaded booking.
func (h *BookingHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid booking ID"})
	}
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.bookings.Update(ctx, id, data)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid booking ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.bookings.Delete(ctx, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking deleted successfully"})
}
