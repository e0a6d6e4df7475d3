package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkarhu/sauna-booking/internal/service"
)

// SaunaHandler exposes the sauna status projection over HTTP.
type SaunaHandler struct {
	sauna *service.SaunaService
}

// NewSaunaHandler constructs a SaunaHandler.
func NewSaunaHandler(sauna *service.SaunaService) *SaunaHandler {
	return &SaunaHandler{sauna: sauna}
}

// GetStatus handles GET /sauna/status.  Public: the booking form polls it.
func (h *SaunaHandler) GetStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cur, err := h.sauna.Current(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}

// SetStatus handles PUT /sauna/status (authenticated).
func (h *SaunaHandler) SetStatus(c echo.Context) error {
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}
	if !requireFields(c, data, "status") {
		return nil
	}
	status, _ := data["status"].(string)

	var reason *string
	if v, ok := data["reason"].(string); ok && v != "" {
		reason = &v
	}
	var bookingID *uint64
	if v, ok := data["booking_id"]; ok && v != nil {
		if f, ok := v.(float64); ok && f > 0 {
			id := uint64(f)
			bookingID = &id
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cur, err := h.sauna.SetStatus(ctx, status, reason, bookingID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, cur)
}
