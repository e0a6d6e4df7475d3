package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/mkarhu/sauna-booking/internal/config"
	"github.com/mkarhu/sauna-booking/internal/handler"
	"github.com/mkarhu/sauna-booking/internal/middleware"
)

// Deps bundles everything the route table needs.
type Deps struct {
	JWTSecret string
	Redis     *redis.Client // may be nil; disables rate limiting and caching

	Auth     *handler.AuthHandler
	Bookings *handler.BookingHandler
	Sauna    *handler.SaunaHandler
	Users    *handler.UserHandler
	Products *handler.ProductHandler
}

// Register wires the full route table onto the Echo instance.
//
// Public surface: health check, login, sauna status read, product reads
// and guest booking creation.  Everything else requires a valid access
// token; user management and product writes additionally require the
// admin role.
func Register(e *echo.Echo, d Deps) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))

	e.GET("/healthz", handler.Health)

	e.POST("/users/login", d.Auth.Login)

	// The booking form is usable without an account: guests can create
	// bookings and poll the sauna status.
	e.GET("/sauna/status", d.Sauna.GetStatus)
	e.POST("/bookings", d.Bookings.Create, middleware.OptionalJWTAuth(d.JWTSecret))

	catalogCache := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)
	e.GET("/products", d.Products.List, catalogCache)
	e.GET("/products/:id", d.Products.Get, catalogCache)

	auth := e.Group("", middleware.JWTAuth(d.JWTSecret))
	auth.GET("/bookings", d.Bookings.List)
	auth.GET("/bookings/:id", d.Bookings.Get)
	auth.PUT("/bookings/:id", d.Bookings.Update)
	auth.DELETE("/bookings/:id", d.Bookings.Delete)
	auth.PUT("/sauna/status", d.Sauna.SetStatus)
	auth.PUT("/users/change-password", d.Users.ChangePassword)

	admin := auth.Group("", middleware.RequireAdmin())
	admin.GET("/users", d.Users.List)
	admin.POST("/users", d.Users.Create)
	admin.PUT("/users/:id", d.Users.Update)
	admin.DELETE("/users/:id", d.Users.Delete)
	admin.PUT("/users/:id/reset-password", d.Users.ResetPassword)
	admin.POST("/products", d.Products.Create)
	admin.PUT("/products/:id", d.Products.Update)
	admin.DELETE("/products/:id", d.Products.Delete)
}
