package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/andres-gutierrezri/kitty-project/config"
	"github.com/andres-gutierrezri/kitty-project/delivery"
	"github.com/andres-gutierrezri/kitty-project/domain"
	"github.com/andres-gutierrezri/kitty-project/middleware"
	"github.com/andres-gutierrezri/kitty-project/repository"
	"github.com/andres-gutierrezri/kitty-project/service"
	"github.com/andres-gutierrezri/kitty-project/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, relying on the environment")
	}

	env := os.Getenv("APP_ENV")
	utils.InitLogger(env)

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal().Msg("JWT_SECRET must be set and at least 32 characters long")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.BootDB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to boot database")
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			redisDB = parsed
		}
	}
	rdb, err := config.InitRedisDB(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"), redisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("Connected to " + utils.ColorText("Redis", utils.Green) + " successfully")

	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}
	if _, err := strconv.Atoi(smtpPort); err != nil {
		log.Fatal().Str("SMTP_PORT", smtpPort).Msg("SMTP_PORT must be numeric")
	}
	mailer := utils.NewMailer(utils.MailerConfig{
		Host:          os.Getenv("SMTP_HOST"),
		Port:          smtpPort,
		Username:      os.Getenv("SMTP_USERNAME"),
		Password:      os.Getenv("SMTP_PASSWORD"),
		From:          os.Getenv("SMTP_FROM"),
		PlainTextOnly: env == "development",
	})

	lang := os.Getenv("APP_API_RETURN_LANG")
	if lang == "" {
		lang = "EN"
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenStore := repository.NewTokenRedisRepository(rdb)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	notifier := service.NewEmailNotifier(mailer, lang)
	authService := service.NewAuthService(userRepo, tokenStore, notifier, jwtSecret, baseURL)
	accountService := service.NewAccountService(userRepo, notifier, domain.SystemClock)
	adminService := service.NewAdminService(userRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo)
	reviewService := service.NewReviewService(productRepo, orderRepo)

	// HTTP
	app := gin.New()
	config.InitMiddleware(app)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	limiter := middleware.NewRateLimiter(rdb)
	jwtManager := authService.GetAccessTokenManager()

	delivery.NewAuthHandler(app, authService, limiter, lang)
	delivery.NewAccountHandler(app, accountService, jwtManager)
	delivery.NewProductHandler(app, productService, reviewService, jwtManager)
	delivery.NewOrderHandler(app, orderService, jwtManager)
	delivery.NewAdminHandler(app, adminService, jwtManager)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runDeletionSweeper(rootCtx, accountService)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: app,
	}

	go func() {
		log.Info().Msg("Listening on " + utils.ColorText(server.Addr, utils.Cyan))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server stopped unexpectedly")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rdb.Close()

	log.Info().Msg("Bye")
}

// runDeletionSweeper purges accounts whose 30-day grace period has elapsed.
// It runs once at startup and then daily, so a restart never extends the
// grace period.
func runDeletionSweeper(ctx context.Context, accounts domain.AccountUseCase) {
	sweep := func() {
		sweepCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()

		notices, err := accounts.SweepExpiredAccounts(sweepCtx)
		if err != nil {
			log.Error().Err(err).Msg("Deletion sweep failed")
			return
		}
		if len(notices) > 0 {
			log.Info().Int("purged", len(notices)).Msg("Deletion sweep finished")
		}
	}

	sweep()

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
