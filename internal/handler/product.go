package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkarhu/sauna-booking/internal/service"
)

// ProductHandler exposes the front-desk catalog.  Reads are public;
// writes are admin-only via the router.
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /products.
func (h *ProductHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.products.List(ctx, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.products.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /products.
func (h *ProductHandler) Create(c echo.Context) error {
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}
	if !requireFields(c, data, "name", "price") {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.products.Create(ctx, data)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /products/:id and returns the reloaded product.
func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.products.Update(ctx, id, data)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.products.Delete(ctx, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}
