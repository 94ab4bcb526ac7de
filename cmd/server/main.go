package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rechargbatt/backend/internal/handler"
	"github.com/rechargbatt/backend/internal/logging"
	"github.com/rechargbatt/backend/internal/repository"
	"github.com/rechargbatt/backend/internal/service"
	"github.com/rechargbatt/backend/pkg/auth"
	"github.com/rechargbatt/backend/pkg/whatsapp"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logging.Fatal("DATABASE_URL is required")
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-secret-change-in-production-32bytes"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	pool, err := repository.NewPool(context.Background(), dbURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	requestRepo := repository.NewPgRequestRepository(pool)
	whatsappClient := whatsapp.NewClient(
		os.Getenv("WHATSAPP_TOKEN"),
		os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
	)
	notifier := service.NewWhatsAppNotifier(whatsappClient, os.Getenv("ADMIN_WHATSAPP_TO"))
	requestService := service.NewRequestService(requestRepo, notifier)

	h := handler.New(pool, frontendURL)
	requestHandler := handler.NewRequestHandler(requestService)
	adminHandler := handler.NewAdminHandler(requestService, handler.AdminConfig{
		Password:      os.Getenv("ADMIN_PASSWORD"),
		APIKey:        os.Getenv("ADMIN_API_KEY"),
		SessionSecret: auth.SessionSecretBytes(sessionSecret),
		DevBypass:     os.Getenv("ADMIN_DEV_BYPASS") == "1",
		Env:           os.Getenv("ENV"),
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/requests", requestHandler.Submit)
	// Route name used by the first generation of the customer forms.
	mux.HandleFunc("POST /api/notify-admin", requestHandler.Submit)
	mux.HandleFunc("POST /api/admin/login", adminHandler.Login)
	mux.HandleFunc("POST /api/admin/logout", adminHandler.Logout)
	mux.HandleFunc("GET /api/admin/me", adminHandler.Me)
	mux.HandleFunc("GET /api/admin/requests", adminHandler.ListRequests)
	mux.HandleFunc("PATCH /api/admin/requests/{id}/status", adminHandler.UpdateStatus)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
