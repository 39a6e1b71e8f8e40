package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func validConfig() Config {
	cfg := Default()
	cfg.Session.JWTSecret = testSecret
	return cfg
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9090"
stock:
  backend: postgres
  timeout: 2s
storage:
  backend: redis
  redis_addr: "cache:6379"
  redis_ttl: 72h
kafka:
  brokers: ["k1:9092", "k2:9092"]
`), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, StockBackendPostgres, cfg.Stock.Backend)
	assert.Equal(t, 2*time.Second, cfg.Stock.Timeout)
	assert.Equal(t, StorageBackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 72*time.Hour, cfg.Storage.RedisTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	// Untouched fields keep their defaults
	assert.Equal(t, "cartstore:", cfg.Storage.RedisPrefix)
	assert.Equal(t, "cart-notifications", cfg.Kafka.Topic)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stock: [unclosed"), 0o600))

	_, err := Load(path)

	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	err := cfg.ApplyEnv(envMap(map[string]string{
		"HTTP_ADDR":       ":7000",
		"STOCK_API_URL":   "http://catalog:3333",
		"STOCK_TIMEOUT":   "750ms",
		"STORAGE_BACKEND": "dynamodb",
		"DYNAMODB_TABLE":  "carts",
		"KAFKA_BROKERS":   "a:9092,b:9092",
		"JWT_SECRET":      testSecret,
		"SESSION_TTL":     "1h",
	}))

	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "http://catalog:3333", cfg.Stock.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Stock.Timeout)
	assert.Equal(t, StorageBackendDynamoDB, cfg.Storage.Backend)
	assert.Equal(t, "carts", cfg.Storage.DynamoDBTable)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_BadDuration(t *testing.T) {
	cfg := Default()

	err := cfg.ApplyEnv(envMap(map[string]string{"STOCK_TIMEOUT": "soon"}))

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "STOCK_TIMEOUT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"memory storage", func(c *Config) { c.Storage.Backend = StorageBackendMemory }, ""},
		{"missing secret", func(c *Config) { c.Session.JWTSecret = "" }, "JWT_SECRET is required"},
		{"short secret", func(c *Config) { c.Session.JWTSecret = "short" }, "at least 32 characters"},
		{"unknown stock backend", func(c *Config) { c.Stock.Backend = "grpc" }, "unknown stock backend"},
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "s3" }, "unknown storage backend"},
		{"file without path", func(c *Config) { c.Storage.Path = "" }, "storage path is required"},
		{"dynamo without table", func(c *Config) { c.Storage.Backend = StorageBackendDynamoDB }, "dynamodb_table is required"},
		{"postgres without url", func(c *Config) {
			c.Stock.Backend = StockBackendPostgres
			c.Stock.DatabaseURL = ""
		}, "database_url is required"},
		{"zero timeout", func(c *Config) { c.Stock.Timeout = 0 }, "stock timeout must be positive"},
		{"kafka without topic", func(c *Config) {
			c.Kafka.Brokers = []string{"k:9092"}
			c.Kafka.Topic = ""
		}, "kafka topic is required"},
		{"zero session ttl", func(c *Config) { c.Session.TTL = 0 }, "session ttl must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CART_CONFIG", "")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, StorageBackendMemory, cfg.Storage.Backend)
}

func TestApplyEnv_KafkaGroupID(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{"KAFKA_GROUP_ID": "relay-2"})))

	assert.Equal(t, "relay-2", cfg.Kafka.GroupID)
}

func TestKafkaConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    KafkaConfig
		errMsg string
	}{
		{"complete", KafkaConfig{Brokers: []string{"k:9092"}, Topic: "t", GroupID: "g"}, ""},
		{"no brokers", KafkaConfig{Topic: "t", GroupID: "g"}, "kafka brokers are required"},
		{"no topic", KafkaConfig{Brokers: []string{"k:9092"}, GroupID: "g"}, "kafka topic is required"},
		{"no group", KafkaConfig{Brokers: []string{"k:9092"}, Topic: "t"}, "kafka group_id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestRelayFromEnv(t *testing.T) {
	t.Setenv("CART_CONFIG", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("KAFKA_GROUP_ID", "")

	cfg, err := RelayFromEnv()

	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
	assert.Equal(t, "cart-notifications", cfg.Topic)
	assert.Equal(t, "cart-notifier", cfg.GroupID)
}

func TestRelayFromEnv_RequiresBrokers(t *testing.T) {
	t.Setenv("CART_CONFIG", "")
	t.Setenv("KAFKA_BROKERS", "")

	_, err := RelayFromEnv()

	assert.ErrorContains(t, err, "kafka brokers are required")
}
