package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/mkarhu/sauna-booking/internal/config"
	"github.com/mkarhu/sauna-booking/internal/database"
	"github.com/mkarhu/sauna-booking/internal/handler"
	"github.com/mkarhu/sauna-booking/internal/queue"
	"github.com/mkarhu/sauna-booking/internal/repository"
	"github.com/mkarhu/sauna-booking/internal/router"
	"github.com/mkarhu/sauna-booking/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when redis is unreachable

	publisher := queue.NewPublisher()
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	bookingRepo := repository.NewBookingRepo(db)
	saunaRepo := repository.NewSaunaStatusRepo(db)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)

	bookingSvc := service.NewBookingService(bookingRepo, saunaRepo, publisher)
	saunaSvc := service.NewSaunaService(saunaRepo, bookingRepo)
	userSvc := service.NewUserService(userRepo, cfg.BcryptCost)
	productSvc := service.NewProductService(productRepo)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Deps{
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		Auth:      handler.NewAuthHandler(userSvc, cfg.JWTSecret, cfg.AccessTTLMin),
		Bookings:  handler.NewBookingHandler(bookingSvc),
		Sauna:     handler.NewSaunaHandler(saunaSvc),
		Users:     handler.NewUserHandler(userSvc),
		Products:  handler.NewProductHandler(productSvc),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
