package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/analysis"
	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/care-scheduler/internal/db"
	"github.com/BruksfildServices01/care-scheduler/internal/handlers"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/care-scheduler/internal/jobs"
	"github.com/BruksfildServices01/care-scheduler/internal/llm"
	"github.com/BruksfildServices01/care-scheduler/internal/routes"
	"github.com/BruksfildServices01/care-scheduler/internal/session"
	ucAppointment "github.com/BruksfildServices01/care-scheduler/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/care-scheduler/internal/usecase/auth"
	ucConsultation "github.com/BruksfildServices01/care-scheduler/internal/usecase/consultation"
)

func main() {
	cfg := config.Load()

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}

	redisClient := cache.NewRedisClient(cfg)
	store := cache.NewRedisStore(redisClient, "care")
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		log.Warn("redis unreachable, caching and rate limits fail open", zap.Error(err))
	}
	cancelPing()

	issuer, err := session.NewIssuer(cfg)
	if err != nil {
		log.Fatal("session issuer", zap.Error(err))
	}

	// ======================================================
	// REPOSITORIES
	// ======================================================
	users := repository.NewUserGormRepository(db)
	doctors := repository.NewDoctorGormRepository(db)
	ledger := repository.NewAppointmentGormRepository(db)
	consultations := repository.NewConsultationGormRepository(db)
	medicines := repository.NewMedicineGormRepository(db)
	directory := cache.NewDoctorDirectory(doctors, store, cfg.DoctorCacheTTL, log)

	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogger, log)

	generator := llm.NewOpenAIGenerator(cfg)
	gateway := analysis.NewGateway(generator, log)

	// ======================================================
	// USE CASES
	// ======================================================
	// Booking reads the doctor straight from the database so a stale
	// cached availability flag cannot admit a booking.
	createAppointment := ucAppointment.NewCreateAppointment(ledger, doctors, dispatcher, cfg.Timezone)
	completePast := ucAppointment.NewCompletePastAppointments(ledger, dispatcher, cfg.Timezone, log)

	authHandler := handlers.NewAuthHandler(
		ucAuth.NewRegister(users, issuer, dispatcher, cfg.BcryptCost, cfg.EmailDomainCheck),
		ucAuth.NewLogin(users, issuer),
		ucAuth.NewMe(users),
		ucAuth.NewUpdateProfile(users, dispatcher),
		auditLogger,
		log,
	)
	doctorHandler := handlers.NewDoctorHandler(
		directory,
		ucAppointment.NewGetAvailability(ledger, directory, cfg.Timezone),
		log,
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointment,
		ucAppointment.NewListAppointments(ledger),
		ucAppointment.NewGetAppointment(ledger),
		ucAppointment.NewUpdateAppointment(ledger, dispatcher, cfg.Timezone),
		ucAppointment.NewCancelAppointment(ledger, dispatcher, cfg.Timezone),
		log,
	)
	aiHandler := handlers.NewAIHandler(
		ucConsultation.NewAnalyze(gateway, consultations, dispatcher),
		ucConsultation.NewListConsultations(consultations),
		ucConsultation.NewGetConsultation(consultations),
		gateway,
		log,
	)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Log:          log,
		Verifier:     issuer,
		Users:        users,
		Limits:       store,
		Health:       handlers.NewHealthHandler(cfg.Env),
		Auth:         authHandler,
		Doctors:      doctorHandler,
		Appointments: appointmentHandler,
		AI:           aiHandler,
		Medicines:    handlers.NewMedicineHandler(medicines, log),
	})

	sweeper := jobs.NewLedgerSweeper(completePast, cfg.SweepEvery, cfg.Timezone, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal("ledger sweeper", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("server running",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("ai_configured", generator.Configured()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", zap.String("signal", sig.String()))

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	dispatcher.Close()
	if err := redisClient.Close(); err != nil {
		log.Warn("close redis", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return log
}
