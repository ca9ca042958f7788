package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/stay-booking/internal/config"
	"github.com/iliyamo/stay-booking/internal/database"
	"github.com/iliyamo/stay-booking/internal/handler"
	appmw "github.com/iliyamo/stay-booking/internal/middleware"
	"github.com/iliyamo/stay-booking/internal/queue"
	"github.com/iliyamo/stay-booking/internal/repository"
	"github.com/iliyamo/stay-booking/internal/router"
	"github.com/iliyamo/stay-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// nil when Redis is unreachable; rate limiting and response
	// caching then disable themselves.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	listings := repository.NewListingRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)
	favorites := repository.NewFavoriteRepo(db)

	// One lock set for both services: booking and review writes for a
	// listing serialize on the same key.
	locks := service.NewKeyedMutex()
	bookingSvc := service.NewBookingService(listings, bookings, locks)
	reviewSvc := service.NewReviewService(listings, reviews, locks)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = appmw.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterListings(e, handler.NewListingHandler(listings), handler.NewFavoriteHandler(favorites, listings), cfg.JWTSecret, cacheMW)
	router.RegisterBookings(e, handler.NewBookingHandler(bookingSvc, listings), cfg.JWTSecret)
	router.RegisterReviews(e, handler.NewReviewHandler(reviewSvc), cfg.JWTSecret)
	router.RegisterUpload(e, handler.NewUploadHandler(cfg.MediaUploadURL), cfg.JWTSecret)

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
