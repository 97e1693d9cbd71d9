package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	ServiceName string
	// Shop Configuration
	LowStockThreshold int
	CurrencySymbol    string
	SeedSampleData    bool
	// Storage Configuration
	SQLitePath string
	LedgerPath string
	// Cache Configuration
	UseCache              bool
	RedisHost             string
	RedisPort             string
	RedisPassword         string
	RedisDB               int
	CacheTTL              int
	IdempotencyTTLSeconds int
	// Kafka Configuration
	UseKafka         bool
	KafkaBrokers     []string
	KafkaTopicSweets string
	KafkaTopicStock  string
	KafkaClientID    string
	KafkaAcks        string
	KafkaRetries     int
	KafkaGroupID     string
	// Retry Configuration
	MaxRetries   int
	RetryDelayMs int
}

func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		ServiceName: getEnv("SERVICE_NAME", "sweet-shop"),
		// Shop Configuration
		LowStockThreshold: getEnvAsInt("LOW_STOCK_THRESHOLD", 5),
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "₹"),
		SeedSampleData:    getEnvAsBool("SEED_SAMPLE_DATA", true),
		// Storage Configuration
		SQLitePath: getEnv("SQLITE_PATH", ""),
		LedgerPath: getEnv("LEDGER_PATH", "./ledger.db"),
		// Cache Configuration
		UseCache:              getEnvAsBool("USE_CACHE", false),
		RedisHost:             getEnv("REDIS_HOST", "localhost"),
		RedisPort:             getEnv("REDIS_PORT", "6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		CacheTTL:              getEnvAsInt("CACHE_TTL", 300),
		IdempotencyTTLSeconds: getEnvAsInt("IDEMPOTENCY_TTL_SECONDS", 300),
		// Kafka Configuration
		UseKafka:         getEnvAsBool("USE_KAFKA", false),
		KafkaBrokers:     getEnvAsList("KAFKA_BROKERS", "localhost:9093"),
		KafkaTopicSweets: getEnv("KAFKA_TOPIC_SWEETS", "sweetshop.sweets"),
		KafkaTopicStock:  getEnv("KAFKA_TOPIC_STOCK", "sweetshop.stock"),
		KafkaClientID:    getEnv("KAFKA_CLIENT_ID", "sweet-shop"),
		KafkaAcks:        getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:     getEnvAsInt("KAFKA_RETRIES", 3),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "sweet-shop-ledger"),
		// Retry Configuration
		MaxRetries:   getEnvAsInt("MAX_RETRIES", 3),
		RetryDelayMs: getEnvAsInt("RETRY_DELAY_MS", 1000),
	}
}

// RedisAddr returns host:port of the Redis server
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

// getEnvAsList splits a comma-separated value and trims each entry
func getEnvAsList(key, defaultValue string) []string {
	parts := strings.Split(getEnv(key, defaultValue), ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}
