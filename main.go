package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recipebook/go-services/handlers"
	"github.com/recipebook/go-services/internal/config"
	"github.com/recipebook/go-services/internal/database"
	"github.com/recipebook/go-services/internal/notes"
	"github.com/recipebook/go-services/internal/recipes"
	"github.com/recipebook/go-services/internal/storage"
	"github.com/recipebook/go-services/internal/users"
	"github.com/recipebook/go-services/pkg/logger"
	"github.com/recipebook/go-services/pkg/metrics"
	"github.com/recipebook/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging first (LOG_LEVEL env: debug|info|warn|error)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v rate_limit=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// every request resolves an optional identity; handlers decide whether
	// anonymity is acceptable
	r.Use(middleware.Identity(cfg.JWT.Secret))

	// optional Redis for the distributed rate limiter
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// MongoDB is a hard dependency; retry with backoff to tolerate startup
	// races, then give up
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)

	userSvc := users.NewService(users.NewMongoRepository(db.Collection("users")), cfg.JWT.Secret)
	recipeSvc := recipes.NewService(recipes.NewMongoRepository(db.Collection("recipes")))
	noteSvc := notes.NewService(notes.NewMongoRepository(db.Collection("notes")), userSvc)

	// optional image storage
	var images handlers.ImageStorage
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		store, err := storage.NewImageStore(mcfg)
		if err != nil {
			logger.Warnf("image storage unavailable: %v", err)
		} else {
			logger.Infof("image storage ready (bucket=%s)", mcfg.Bucket)
			images = store
		}
	}

	root := r.Group("/")
	handlers.NewAuthHandler(userSvc).Register(root)
	handlers.NewRecipeHandler(recipeSvc, images).Register(root)
	handlers.NewNotesHandler(noteSvc).Register(root)
	handlers.NewChatHandler(cfg.AI).Register(root)
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: Mongo is required, Redis only when the limiter depends on it
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongo"] = client.Ping(c.Request.Context(), nil) == nil
		if !deps["mongo"] {
			ready = false
		}
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil && redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}
		deps["images"] = images != nil

		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting recipebook service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
