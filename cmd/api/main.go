package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nattapon-dev/hotel-booking-api/internal/config"
	"github.com/nattapon-dev/hotel-booking-api/internal/db"
	"github.com/nattapon-dev/hotel-booking-api/internal/handlers"
	"github.com/nattapon-dev/hotel-booking-api/internal/mailer"
	"github.com/nattapon-dev/hotel-booking-api/internal/middleware"
	"github.com/nattapon-dev/hotel-booking-api/internal/repository"
	"github.com/nattapon-dev/hotel-booking-api/internal/services"
	"github.com/nattapon-dev/hotel-booking-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Production() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	dbConn, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	dispatcher, err := mailer.FromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("mailer", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(dbConn)
	hotelRepo := repository.NewHotelRepository(dbConn)
	bookingRepo := repository.NewBookingRepository(dbConn)

	authService := services.NewAuthService(userRepo, dispatcher, cfg)
	hotelService := services.NewHotelService(hotelRepo)
	bookingService := services.NewBookingService(bookingRepo, hotelRepo, dispatcher)

	h := handlers.NewHandler(authService, hotelService, bookingService, cfg)
	authMW := middleware.NewAuthMiddleware(cfg.JWTSecret)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireAuth)
				r.Get("/me", h.Auth.Me)
				r.Get("/logout", h.Auth.Logout)
			})

			r.With(authMW.RequireAdmin).Put("/users/{id}/role", h.Auth.UpdateRole)
		})

		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", h.Hotels.List)
			r.With(authMW.RequireAdmin).Post("/", h.Hotels.Create)

			r.Get("/{id}", h.Hotels.Get)
			r.With(authMW.RequireAdmin).Put("/{id}", h.Hotels.Update)
			r.With(authMW.RequireAdmin).Delete("/{id}", h.Hotels.Delete)

			// nested booking routes, same handlers as the flat ones
			r.Route("/{hotelId}/bookings", func(r chi.Router) {
				r.Use(authMW.RequireAuth)
				r.Get("/", h.Bookings.List)
				r.Post("/", h.Bookings.Create)
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(authMW.RequireAuth)
			r.Get("/", h.Bookings.List)
			r.Post("/", h.Bookings.Create)
			r.Get("/{id}", h.Bookings.Get)
			r.Put("/{id}", h.Bookings.Update)
			r.Delete("/{id}", h.Bookings.Delete)
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
