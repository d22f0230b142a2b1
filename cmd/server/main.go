package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/freshmarket/marketplace/internal/config"
	"github.com/freshmarket/marketplace/internal/order"
	orderhttp "github.com/freshmarket/marketplace/internal/order/delivery/http"
	"github.com/freshmarket/marketplace/internal/product"
	producthttp "github.com/freshmarket/marketplace/internal/product/delivery/http"
	"github.com/freshmarket/marketplace/internal/user"
	userhttp "github.com/freshmarket/marketplace/internal/user/delivery/http"
	userdomain "github.com/freshmarket/marketplace/internal/user/domain"
	userrepository "github.com/freshmarket/marketplace/internal/user/repository"
	"github.com/freshmarket/marketplace/kafka"
	"github.com/freshmarket/marketplace/pkg/cache"
	"github.com/freshmarket/marketplace/pkg/database"
	"github.com/freshmarket/marketplace/pkg/logger"
	"github.com/freshmarket/marketplace/pkg/tracing"
)

const cacheTTL = 5 * time.Minute

func main() {
	cfg := config.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "marketplace-server")
	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting marketplace server")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	userRepo := userrepository.NewGormUserRepository(db)
	if err := userRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run user migrations")
	}
	if err := product.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run catalog migrations")
	}
	if err := order.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run order migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Redis-backed catalog cache
	var catalogCache *cache.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		catalogCache = cache.New(redisClient, "marketplace:", cacheTTL)
		logger.Logger.Info().Str("redis_addr", cfg.RedisAddr).Msg("Catalog cache enabled")
	}

	// Optional Kafka publisher and consumer
	var publisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, order events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}

		startConsumer(cfg.KafkaBrokers)
	}

	// The user directory can run on plain database/sql instead of GORM
	var userHandler *userhttp.UserHandler
	var gate *userhttp.Gate
	if cfg.UserRepoDriver == "sql" {
		sqlConn, err := database.NewPostgresConnection(cfg.DB)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to open plain SQL connection")
		}
		var repo userdomain.UserRepository = userrepository.NewPostgresUserRepository(sqlConn)
		userHandler = userhttp.NewUserHandler(repo)
		gate = userhttp.NewGate(repo)
		logger.Logger.Info().Msg("User repository using plain database/sql driver")
	} else {
		userHandler, err = user.InitializeHandler(db)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
		}
		gate, err = user.InitializeGate(db)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize access gate")
		}
	}

	productHandler, err := product.InitializeHandler(db, catalogCache)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product handler")
	}

	orderHandler, err := order.InitializeHandler(db, product.ProvideProductRepository(db), publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}

	// Start HTTP server
	go startHTTPServer(userHandler, productHandler, orderHandler, gate, sqlDB, cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// startConsumer subscribes to order events and surfaces them as logs and
// a Prometheus counter.
func startConsumer(brokers []string) {
	consumer, err := kafka.NewConsumer(brokers, "marketplace-server",
		[]string{kafka.TopicOrderCreated, kafka.TopicOrderStatusChanged})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka consumer, event log disabled")
		return
	}

	eventsConsumed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_order_events_consumed_total",
			Help: "Total number of order events consumed from Kafka",
		},
		[]string{"event_type"},
	)
	prometheus.MustRegister(eventsConsumed)

	consumer.RegisterHandler(kafka.EventTypeOrderCreated, func(ctx context.Context, payload []byte) error {
		var event kafka.OrderCreatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return err
		}
		eventsConsumed.WithLabelValues(kafka.EventTypeOrderCreated).Inc()
		logger.Info(ctx).
			Str("order_number", event.OrderNumber).
			Uint("user_id", event.UserID).
			Float64("total", event.Total).
			Msg("Order placed")
		return nil
	})

	consumer.RegisterHandler(kafka.EventTypeOrderStatusChanged, func(ctx context.Context, payload []byte) error {
		var event kafka.OrderStatusChangedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return err
		}
		eventsConsumed.WithLabelValues(kafka.EventTypeOrderStatusChanged).Inc()
		logger.Info(ctx).
			Str("order_number", event.OrderNumber).
			Str("old_status", event.OldStatus).
			Str("new_status", event.NewStatus).
			Msg("Order status changed")
		return nil
	})

	if err := consumer.Start(context.Background()); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
	}
}

func startHTTPServer(userHandler *userhttp.UserHandler, productHandler *producthttp.ProductHandler, orderHandler *orderhttp.OrderHandler, gate *userhttp.Gate, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	userHandler.RegisterRoutes(router, gate)
	productHandler.RegisterRoutes(router, gate)
	orderHandler.RegisterRoutes(router, gate)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
