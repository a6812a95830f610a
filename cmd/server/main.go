package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/connect-matching/internal/cache"
	"github.com/fadilmartias/connect-matching/internal/config"
	"github.com/fadilmartias/connect-matching/internal/domain/fiber/handler"
	applogger "github.com/fadilmartias/connect-matching/internal/logger"
	"github.com/fadilmartias/connect-matching/internal/middleware"
	"github.com/fadilmartias/connect-matching/internal/repository"
	"github.com/fadilmartias/connect-matching/internal/service"
	"github.com/fadilmartias/connect-matching/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zl, err := applogger.New(appConfig.LogJSON, appConfig.LogDebug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(zl),
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db, err := ConnectDB(zl)
	if err != nil {
		zl.Fatal("database setup failed", zap.Error(err))
	}

	matchingConfig := config.LoadMatchingConfig()
	opts := []usecase.Option{
		usecase.WithWorkers(matchingConfig.Workers),
		usecase.WithSemanticTopK(matchingConfig.SemanticTopK),
	}

	redisConfig := config.LoadRedisConfig()
	if redisConfig.URL != "" {
		rdb, err := cache.NewRedisClient(ctx, redisConfig.URL)
		if err != nil {
			zl.Warn("match cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			opts = append(opts, usecase.WithCache(cache.NewMatchCache(rdb, redisConfig.MatchTTL)))
		}
	}

	gemini, err := service.NewGeminiService(ctx, zl.Named("gemini"))
	switch {
	case errors.Is(err, service.ErrGeminiDisabled):
		zl.Warn("gemini disabled, embeddings unavailable")
	case err != nil:
		zl.Fatal("gemini setup failed", zap.Error(err))
	default:
		opts = append(opts, usecase.WithEmbedder(gemini))
	}

	if explainer := newExplainer(matchingConfig.ExplainerProvider, gemini, zl); explainer != nil {
		opts = append(opts, usecase.WithExplainer(explainer))
	}

	uc := usecase.NewMatchingUsecase(
		repository.NewCandidateRepository(db),
		repository.NewJobOfferRepository(db),
		zl.Named("matching"),
		opts...,
	)

	handler.NewCandidateHandler(uc, zl.Named("cv")).RegisterRoutes(app)
	handler.NewOfferHandler(uc).RegisterRoutes(app)
	handler.NewMatchHandler(uc, matchingConfig.MinScore).RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				zl.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
			}
		}
	}()

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zl.Error("shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("server running", zap.String("port", appConfig.Port), zap.String("env", appConfig.Env))
	if err := app.Listen(appConfig.Port); err != nil {
		zl.Fatal("listen failed", zap.Error(err))
	}
}

// newExplainer picks the LLM used for match explanations. It returns nil when the provider is
// "none" or its credentials are missing.
func newExplainer(provider string, gemini *service.GeminiService, zl *zap.Logger) service.Explainer {
	switch provider {
	case "gemini":
		if gemini == nil {
			zl.Warn("explanations disabled: gemini not configured")
			return nil
		}
		return service.NewGeminiExplainer(gemini, config.LoadGeminiConfig().Model)
	case "openrouter":
		openRouter := service.NewOpenRouterService()
		if !openRouter.Enabled() {
			zl.Warn("explanations disabled: OPENROUTER_API_KEY not set")
			return nil
		}
		return openRouter
	case "none", "":
		return nil
	default:
		zl.Warn("unknown explainer provider, explanations disabled", zap.String("provider", provider))
		return nil
	}
}
