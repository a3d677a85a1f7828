package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-interview-portal/config"
	_ "go-interview-portal/docs" // Important for Swagger
	v1 "go-interview-portal/internal/delivery/http/v1"
	"go-interview-portal/internal/flow"
	"go-interview-portal/internal/repository/postgres"
	"go-interview-portal/internal/usecase"
	"go-interview-portal/pkg/auth"
	"go-interview-portal/pkg/database"
	"go-interview-portal/pkg/email"
	"go-interview-portal/pkg/logger"
	"go-interview-portal/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Interview Portal API
// @version         1.0
// @description     Candidate interview portal backend: questionnaire autosave, submission and admin roster.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting interview portal backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	answerRepo := postgres.NewAnswerRepository(dbPool)
	progressRepo := postgres.NewProgressRepository(dbPool)
	invitationRepo := postgres.NewInvitationRepository(dbPool)
	ratingRepo := postgres.NewRatingRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - invitations will be saved without sending")
	}

	// 7. Setup UseCases
	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, validate)
	answerUC := usecase.NewAnswerUsecase(answerRepo)
	progressUC := usecase.NewProgressUsecase(progressRepo)
	invitationUC := usecase.NewInvitationUsecase(invitationRepo, emailService, cfg.FrontendURL, cfg.InviteExpiryDays)
	rosterUC := usecase.NewRosterUsecase(userRepo, invitationRepo, progressRepo, ratingRepo, adminRepo)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, validate)
	exportUC := usecase.NewExportUsecase(answerUC, progressUC, userRepo, ratingRepo)
	resolver := usecase.NewIdentityResolver(invitationRepo)

	// 8. Interview sessions with debounced autosave
	sessions := flow.NewManager(answerUC, progressUC, time.Duration(cfg.DebounceWindowMillis)*time.Millisecond)

	// 9. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.JWKSUrl)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		CandidateUC:  candidateUC,
		InvitationUC: invitationUC,
		RosterUC:     rosterUC,
		RatingUC:     ratingUC,
		ExportUC:     exportUC,
		Resolver:     resolver,
		Sessions:     sessions,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Flush any debounced answers still waiting on their quiet period
	sessions.CloseAll()

	logger.Log.Info("Server exiting")
}
