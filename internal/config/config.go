package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config holds everything cmd/ needs to wire the server.
type Config struct {
	Env      string
	HTTPAddr string

	Storage     string
	MongoURI    string
	MongoDBName string

	JWTSecret string
	JWTTTL    time.Duration

	GuardMutations bool
	MaxUploadBytes int64
	CORSOrigins    []string

	RabbitMQURL      string
	RabbitMQExchange string
}

func (c Config) IsDevelopment() bool { return c.Env == "development" }

// LoadDotEnv reads the given files, .env by default. Missing files are
// skipped; existing variables win.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	c := Config{
		Env:              getEnv("APP_ENV", "production"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":9091"),
		Storage:          getEnv("STORAGE", StorageMongo),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:      getEnv("MONGO_DB_NAME", "shopadmin"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", "order.exchange"),
	}

	var err error
	if c.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h")); err != nil || c.JWTTTL <= 0 {
		return c, fmt.Errorf("invalid JWT_TTL %q", os.Getenv("JWT_TTL"))
	}
	if c.GuardMutations, err = strconv.ParseBool(getEnv("GUARD_MUTATIONS", "true")); err != nil {
		return c, fmt.Errorf("invalid GUARD_MUTATIONS: %w", err)
	}
	mb, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "8"), 10, 64)
	if err != nil || mb <= 0 {
		return c, fmt.Errorf("invalid MAX_UPLOAD_MB %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	c.MaxUploadBytes = mb << 20

	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.CORSOrigins = append(c.CORSOrigins, o)
		}
	}

	switch c.Storage {
	case StorageMongo, StorageMemory:
	default:
		return c, fmt.Errorf("invalid STORAGE %q (want %q or %q)", c.Storage, StorageMongo, StorageMemory)
	}

	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return c, errors.New("JWT_SECRET environment variable not set")
		}
		c.JWTSecret = "dev-secret-key-change-in-production"
	}
	return c, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
