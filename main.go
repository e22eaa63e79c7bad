package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelbuddies/internal/catalog"
	intconfig "travelbuddies/internal/config"
	router "travelbuddies/internal/http"
	h "travelbuddies/internal/http/handlers"
	"travelbuddies/internal/leads"
	"travelbuddies/internal/repositories"
	"travelbuddies/internal/services"
	"travelbuddies/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.InitLogger(env.AppEnv, env.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load(env.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.String("path", env.CatalogPath), zap.Error(err))
	}
	cat = cat.WithAgencyEmail(env.AgencyEmail)

	if _, err := intconfig.ConnectDB(env.DBDSN); err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer intconfig.CloseDB()

	store := repositories.LeadRepository{}
	if store.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := store.EnsureTable(ctx)
		cancel()
		if err != nil {
			logger.Fatal("failed to prepare leads table", zap.Error(err))
		}
	} else {
		logger.Warn("DB_DSN not set, leads are not stored")
	}

	var notifier services.Notifier
	if env.SMTP.Configured() {
		notifier = services.SMTPNotifier{Config: env.SMTP}
	} else {
		logger.Warn("SMTP not configured, lead notifications disabled")
	}
	if !env.AdminEnabled() {
		logger.Warn("ADMIN_PASSWORD_HASH or JWT_SECRET not set, operator inbox disabled")
	}

	hs := &h.Handlers{
		Catalog:   cat,
		Store:     store,
		Notifier:  notifier,
		Fallbacks: services.NewFallbackLog(200),
		Sessions:  leads.NewSessions(),
		Remote:    leads.NewHTTPSubmitter(env.LeadRemoteBaseURL, env.LeadRemoteTimeout),
		Admin: h.AdminConfig{
			Username:     env.AdminUsername,
			PasswordHash: env.AdminPasswordHash,
			Secret:       []byte(env.JWTSecret),
			TokenTTL:     env.AdminTokenTTL,
		},
	}

	r := router.NewRouter(env, hs)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr), zap.String("lead_remote", env.LeadRemoteBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
