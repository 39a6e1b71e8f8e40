package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/example/cart-store/internal/api"
	"github.com/example/cart-store/internal/auth"
	"github.com/example/cart-store/internal/config"
	"github.com/example/cart-store/internal/domain/cart"
	"github.com/example/cart-store/internal/infrastructure/catalog"
	"github.com/example/cart-store/internal/infrastructure/kafka"
	"github.com/example/cart-store/internal/infrastructure/store"
	"github.com/example/cart-store/internal/notification"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("[API] %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] Cart Store")
	log.Println("[API] ========================================")
	log.Printf("[API] Stock backend:   %s", cfg.Stock.Backend)
	log.Printf("[API] Storage backend: %s", cfg.Storage.Backend)

	// Stock lookups, guarded by a circuit breaker
	stockSvc, closeStock, err := newStockService(cfg.Stock)
	if err != nil {
		log.Fatalf("[API] Failed to initialize stock service: %v", err)
	}
	defer closeStock.Close()
	stock := catalog.NewBreakerService(stockSvc, cfg.Stock.MaxFailures, cfg.Stock.BreakerTimeout)

	// Durable cart storage
	storage, closeStorage, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("[API] Failed to initialize storage: %v", err)
	}
	defer closeStorage.Close()

	// Notifications go to the log, to the current request and optionally to Kafka
	notifiers := notification.Multi{notification.LogNotifier{}, notification.ContextNotifier{}}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		notifiers = append(notifiers, notification.NewKafkaNotifier(producer))
		log.Printf("[API] Publishing notifications to %s on %v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	cartStore := cart.NewStore(ctx, stock, storage, notifiers)

	// One session per process; the token is handed to the UI out of band
	jwtService := auth.NewJWTService(cfg.Session.JWTSecret, cfg.Session.TTL)
	sessionID := uuid.New().String()
	token, expiresAt, err := jwtService.IssueSessionToken(sessionID)
	if err != nil {
		log.Fatalf("[API] Failed to issue session token: %v", err)
	}
	log.Printf("[API] Session %s valid for %s (expires %s)", sessionID, jwtService.SessionExpiry(), expiresAt.Format(time.RFC3339))
	log.Printf("[API] Session token: %s", token)

	router := api.NewRouter(api.NewHandlers(cartStore), jwtService)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
	cancel()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newStockService(cfg config.StockConfig) (catalog.StockService, io.Closer, error) {
	switch cfg.Backend {
	case config.StockBackendPostgres:
		db, err := catalog.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("[API] Connected to PostgreSQL catalog")
		return catalog.NewPostgresCatalog(db), db, nil
	case config.StockBackendHTTP:
		log.Printf("[API] Stock API: %s", cfg.BaseURL)
		return catalog.NewHTTPClient(cfg.BaseURL, cfg.Timeout), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown stock backend %q", cfg.Backend)
	}
}

func newStorage(ctx context.Context, cfg config.StorageConfig) (store.KeyValueStore, io.Closer, error) {
	switch cfg.Backend {
	case config.StorageBackendFile:
		fs, err := store.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[API] Storing cart under %s", cfg.Path)
		return fs, nopCloser{}, nil
	case config.StorageBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Printf("[API] Connected to Redis at %s", cfg.RedisAddr)
		return store.NewRedisStore(client, cfg.RedisPrefix, cfg.RedisTTL), client, nil
	case config.StorageBackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		log.Printf("[API] Using DynamoDB table %s", cfg.DynamoDBTable)
		return store.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable), nopCloser{}, nil
	case config.StorageBackendMemory:
		log.Println("[API] Using in-memory storage; the cart will not survive a restart")
		return store.NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
