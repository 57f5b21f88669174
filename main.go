package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/raushankrgupta/closetly/api"
	"github.com/raushankrgupta/closetly/auth"
	"github.com/raushankrgupta/closetly/config"
	"github.com/raushankrgupta/closetly/pricing"
	"github.com/raushankrgupta/closetly/pricing/learned"
	"github.com/raushankrgupta/closetly/store"
	"github.com/raushankrgupta/closetly/undertone"
	"github.com/raushankrgupta/closetly/utils"
)

func main() {
	config.LoadConfig()
	ctx := context.Background()

	st, err := store.Open(ctx, store.Options{
		Driver:   config.StoreDriver,
		DSN:      config.DatabaseDSN,
		MongoURI: config.MongoURI,
		DBName:   config.DBName,

		SQLMigrations: config.SQLMigrations,
	})
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", config.StoreDriver, err)
	}
	defer st.Close()

	authService := auth.NewService(st, []byte(config.JWTSecret), config.SessionTTL, config.MinPasswordLength)
	if config.SendGridAPIKey != "" {
		authService.Welcome = utils.SendWelcomeEmail
	}

	h := &api.Handler{
		Estimator:   pricing.NewEstimator(nil, config.DefaultMarkup),
		Engine:      config.PriceEngine,
		Auth:        authService,
		Store:       st,
		Analyzer:    undertone.NewAnalyzer(nil),
		FrontendDir: config.FrontendDir,
		TrustProxy:  config.TrustProxy,
	}

	if config.PriceEngine == api.EngineModel {
		model, err := learned.LoadOrTrain(config.PriceModelPath, learned.TrainOptions{})
		if err != nil {
			// Requests fail with 503 until the artifact is fixed
			log.Printf("Failed to load price model: %v", err)
		} else {
			model.DefaultMarkup = config.DefaultMarkup
			h.Model = model
		}
	}

	if config.GeminiAPIKey != "" {
		h.Analyzer = undertone.NewAnalyzer(undertone.GeminiFaceLocator{Find: utils.LocateFaceBox})
	}

	if config.RateLimitPerMin > 0 {
		if config.RedisURL != "" {
			limiter, err := utils.NewRedisLimiter(ctx, config.RedisURL, config.RateLimitPerMin)
			if err != nil {
				log.Fatalf("Failed to connect to Redis: %v", err)
			}
			defer limiter.Close()
			h.Limiter = limiter
		} else {
			h.Limiter = utils.NewMemoryLimiter(config.RateLimitPerMin)
		}
	}

	if utils.S3Enabled() {
		archiver, err := utils.NewS3Archiver(ctx, config.AWSRegion, config.AWSBucketName)
		if err != nil {
			log.Printf("S3 disabled: %v", err)
		} else {
			h.Archiver = archiver
		}
	}

	port := config.Port
	fmt.Printf("Server starting on port %s (price engine: %s, store: %s)...\n", port, config.PriceEngine, config.StoreDriver)
	fmt.Printf("Usage: curl -X POST http://localhost:%s/predict -d '{\"brand\":\"Zara\",\"category\":\"Dress\"}'\n", port)
	if err := http.ListenAndServe(":"+port, h.Routes()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
