package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkarhu/sauna-booking/internal/model"
	"github.com/mkarhu/sauna-booking/internal/service"
)

// UserHandler exposes staff account management.  All routes except
// change-password are admin-only; the role gate lives in the router.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.users.List(ctx, limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Create handles POST /users.  Role defaults to employee unless the
// payload explicitly asks for admin.
func (h *UserHandler) Create(c echo.Context) error {
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}
	if !requireFields(c, data, "username", "password") {
		return nil
	}
	username, _ := data["username"].(string)
	password, _ := data["password"].(string)
	role := model.RoleEmployee
	if v, _ := data["role"].(string); v == model.RoleAdmin {
		role = model.RoleAdmin
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.users.Create(ctx, username, password, role)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// Update handles PUT /users/:id.  Password changes go through the
// dedicated reset-password endpoint, so a password field here is ignored.
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}

	var patch model.UserPatch
	if v, ok := data["username"].(string); ok && v != "" {
		patch.Username = &v
	}
	if v, ok := data["role"].(string); ok && v != "" {
		patch.Role = &v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.users.Update(ctx, id, patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// ResetPassword handles PUT /users/:id/reset-password.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}
	if !requireFields(c, data, "password") {
		return nil
	}
	password, _ := data["password"].(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.users.ResetPassword(ctx, id, password); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset successfully"})
}

// ChangePassword handles PUT /users/change-password for the
// authenticated caller.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	callerID, _ := c.Get("user_id").(uint64)
	if callerID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
	}
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}
	if !requireFields(c, data, "currentPassword", "newPassword") {
		return nil
	}
	current, _ := data["currentPassword"].(string)
	next, _ := data["newPassword"].(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.users.ChangePassword(ctx, callerID, current, next); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}

// Delete handles DELETE /users/:id.  Admins cannot delete themselves.
func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}
	if callerID, _ := c.Get("user_id").(uint64); callerID == id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot delete your own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.users.Delete(ctx, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
