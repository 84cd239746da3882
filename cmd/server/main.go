package main // Entry point package

import (
	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/sirupsen/logrus"  // structured logging

	"github.com/iliyamo/ticket-booking/internal/booking"
	"github.com/iliyamo/ticket-booking/internal/config"
	"github.com/iliyamo/ticket-booking/internal/database"
	"github.com/iliyamo/ticket-booking/internal/handler"
	"github.com/iliyamo/ticket-booking/internal/middleware"
	"github.com/iliyamo/ticket-booking/internal/queue"
	"github.com/iliyamo/ticket-booking/internal/repository"
	"github.com/iliyamo/ticket-booking/internal/router"
	queue_publisher "github.com/iliyamo/ticket-booking/internal/service"
)

func main() {
	// A missing .env is fine in production; real env vars take precedence.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer func() { _ = db.Close() }()

	// Redis backs the selection store, response cache and rate limiter.
	// The selection store is mandatory for the booking flow.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Fatal("redis connection failed; selection store requires redis")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	catalog := repository.NewCatalogRepo(db)
	seats := repository.NewSeatLayoutRepo(db)
	offers := repository.NewOfferRepo(db)
	bookings := repository.NewBookingRepo(db, offers)
	notifications := repository.NewNotificationRepo(db)

	// Booking flow services.
	selections := booking.NewSelectionStore(rdb, cfg.SelectionTTL)
	publisher := queue_publisher.NewPublisher(cfg.RabbitURL)
	committer := booking.NewCommitter(bookings, notifications, publisher, selections)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := handler.NewCatalogHandler(catalog)
	seatMapH := handler.NewSeatMapHandler(catalog, seats, selections)
	offerH := handler.NewOfferHandler(offers, cfg.OffersLimit)
	selectionH := handler.NewSelectionHandler(selections, catalog, seats, offers)
	checkoutH := handler.NewCheckoutHandler(cfg, selections, catalog, committer)
	bookingH := handler.NewBookingHandler(bookings)
	notificationH := handler.NewNotificationHandler(notifications)

	e := echo.New()
	e.HideBanner = true

	// Distributed rate limiting in front of everything.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, cfg.JWTSecret, catalogH, seatMapH, offerH, cache)
	router.RegisterBookingFlow(e, cfg.JWTSecret, selectionH, checkoutH, bookingH, notificationH)

	// Background consumer appends confirmed bookings to the audit log.
	go queue.StartBookingConsumer(cfg.RabbitURL)

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")

	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
