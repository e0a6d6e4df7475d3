package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkarhu/sauna-booking/internal/service"
)

// writeServiceError translates service error kinds into HTTP responses.
// Validation and conflict errors map to 400, missing resources to 404,
// everything else to an opaque 500 with the cause logged server-side.
func writeServiceError(c echo.Context, err error) error {
	var ve *service.ValidationError
	var ce *service.ConflictError
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Msg})
	case errors.As(err, &ce):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ce.Msg})
	case errors.As(err, &nf):
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Msg})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// pageParams reads limit/offset query parameters.  An absent or invalid
// limit means no limit; an absent or invalid offset means zero.
func pageParams(c echo.Context) (limit, offset int) {
	limit = -1
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

// bindJSON decodes the request body into a generic payload map.  On a
// malformed body it writes the 400 response and reports false.
func bindJSON(c echo.Context) (map[string]any, bool) {
	var data map[string]any
	if err := c.Bind(&data); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "error decoding JSON in request body"})
		return nil, false
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, true
}

// requireFields checks field presence.  On the first missing field it
// writes the 400 response and reports false.
func requireFields(c echo.Context, data map[string]any, fields ...string) bool {
	for _, f := range fields {
		if v, ok := data[f]; !ok || v == nil {
			_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "Required field: " + f + ", is missing"})
			return false
		}
	}
	return true
}
