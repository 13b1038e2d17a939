package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Store backends accepted by STORE_BACKEND.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel        string // Level for the logrus loggers (e.g., info, debug)
	MaxDimension    int    // Largest width or height a request may ask for
	StoreBackend    string // Where generated documents are kept: memory, redis or mongo
	StoreTTLSeconds int    // Lifetime of a stored document; 0 keeps it forever
	RedisAddr       string // host:port of the Redis server
	RedisPassword   string // Password for the Redis server
	RedisDB         int    // Redis logical database
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
	DBCollection    string // Collection holding maze documents
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
}

// Load reads the configuration from the environment.
// It loads environment variables from a .env file first when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithField("component", "APP").Debugf(".env file not found or could not be loaded: %v", err)
	}

	c := Config{
		HostIP:        getEnvWithDefault("HOST_IP", "0.0.0.0"),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
		StoreBackend:  getEnvWithDefault("STORE_BACKEND", StoreMemory),
		RedisAddr:     getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		DBHost:        getEnvWithDefault("DB_HOST", "localhost"),
		DBUser:        getEnvWithDefault("DB_USER", ""),
		DBPassword:    getEnvWithDefault("DB_PASS", ""),
		DBName:        getEnvWithDefault("DB_NAME", "vinom_maze"),
		DBCollection:  getEnvWithDefault("DB_COLLECTION", "mazes"),
		JWTSecret:     getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:     getEnvWithDefault("JWT_ISSUER", "vinom-maze"),
	}

	ints := []struct {
		key   string
		def   int
		value *int
	}{
		{"REST_PORT", 8080, &c.RESTPort},
		{"MAX_DIMENSION", 200, &c.MaxDimension},
		{"STORE_TTL_SECONDS", 3600, &c.StoreTTLSeconds},
		{"REDIS_DB", 0, &c.RedisDB},
		{"DB_PORT", 27017, &c.DBPort},
	}
	for _, i := range ints {
		v, err := getEnvAsIntWithDefault(i.key, i.def)
		if err != nil {
			return Config{}, err
		}
		*i.value = v
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.StoreBackend {
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of %s, %s, %s: got %q", StoreMemory, StoreRedis, StoreMongo, c.StoreBackend)
	}
	if c.MaxDimension < 2 {
		return fmt.Errorf("MAX_DIMENSION must be at least 2: got %d", c.MaxDimension)
	}
	if c.StoreTTLSeconds < 0 {
		return fmt.Errorf("STORE_TTL_SECONDS must not be negative: got %d", c.StoreTTLSeconds)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("environment variable JWT_SECRET is not set")
	}
	return nil
}

// MongoURI builds the MongoDB connection string, leaving out credentials
// when no user is configured.
func (c Config) MongoURI() string {
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}

// Addr is the listen address of the REST API.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HostIP, c.RESTPort)
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer, or
// the default when it is not set.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
