package main

import (
	"log"

	"blaemart-be/internal/auth"
	"blaemart-be/internal/cart"
	"blaemart-be/internal/category"
	"blaemart-be/internal/collection"
	"blaemart-be/internal/config"
	"blaemart-be/internal/db"
	"blaemart-be/internal/events"
	"blaemart-be/internal/logger"
	"blaemart-be/internal/metrics"
	"blaemart-be/internal/middleware"
	"blaemart-be/internal/order"
	"blaemart-be/internal/product"
	"blaemart-be/internal/profile"
	"blaemart-be/internal/promotion"
	"blaemart-be/internal/review"
	"blaemart-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	auth.Configure(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	database := db.InitDB(cfg)
	defer database.Close()

	// the broker is optional: without AMQP_URL order events are logged and
	// dropped instead of published
	var publisher *events.Publisher
	if cfg.AMQPUrl != "" {
		p, err := events.NewPublisher(cfg)
		if err != nil {
			log.Printf("AMQP unavailable, order events disabled: %v", err)
		} else {
			if err := p.SetupQueues(); err != nil {
				log.Fatalf("failed to declare order queues: %v", err)
			}
			publisher = p
			defer publisher.Close()
		}
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	collectionRepo := collection.NewRepository(database)
	collectionSvc := collection.NewService(collectionRepo)

	promotionRepo := promotion.NewRepository(database)
	promotionSvc := promotion.NewService(promotionRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	profileRepo := profile.NewRepository(database)
	profileSvc := profile.NewService(profileRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, publisher)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(metrics.PrometheusMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	user.NewHandler(userSvc).Register(r)
	category.NewHandler(categorySvc).Register(r)
	collection.NewHandler(collectionSvc).Register(r)
	promotion.NewHandler(promotionSvc).Register(r)
	product.NewHandler(productSvc).Register(r)
	profile.NewHandler(profileSvc).Register(r)
	cart.NewHandler(cartSvc).Register(r)
	order.NewHandler(orderSvc).Register(r)
	review.NewHandler(reviewSvc).Register(r)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(r.Run(":" + cfg.AppPort))
}
