package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkarhu/sauna-booking/internal/service"
	"github.com/mkarhu/sauna-booking/internal/utils"
)

// AuthHandler issues access tokens for staff accounts.
type AuthHandler struct {
	users     *service.UserService
	jwtSecret string
	ttlMin    int
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users *service.UserService, jwtSecret string, ttlMin int) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret, ttlMin: ttlMin}
}

// Login handles POST /users/login.  Unknown username and wrong password
// both answer 401 with the same body.
func (h *AuthHandler) Login(c echo.Context) error {
	data, ok := bindJSON(c)
	if !ok {
		return nil
	}
	if !requireFields(c, data, "username", "password") {
		return nil
	}
	username, _ := data["username"].(string)
	password, _ := data["password"].(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.users.Authenticate(ctx, username, password)
	if err != nil {
		return writeServiceError(c, err)
	}
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.jwtSecret, utils.TokenUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}, h.ttlMin)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"jwt":      tok.Token,
		"username": u.Username,
		"role":     u.Role,
	})
}
