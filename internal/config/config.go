package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"storykeep/internal/auth"
	"storykeep/internal/database"
	"storykeep/internal/logger"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"json"`
	LogFile    string `envconfig:"LOG_FILE" default:""` // empty means stdout
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// Database
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        int           `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"storykeep_db"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	// Users and traits keep one dedicated connection each instead of the pool
	DBHoldConnections bool `envconfig:"DB_HOLD_CONNECTIONS" default:"false"`
	DBConnectRetries  int  `envconfig:"DB_CONNECT_RETRIES" default:"10"`
	// Secret, read from file
	DBPassword string `ignored:"true"`

	// Redis holds issued token ids
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `ignored:"true"`

	// Tokens
	JWTSecret      string        `ignored:"true"`
	AccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"12h"`

	// Password hashing
	Argon2MemoryKiB   uint32 `envconfig:"ARGON2_MEMORY_KIB" default:"65536"`
	Argon2Iterations  uint32 `envconfig:"ARGON2_ITERATIONS" default:"3"`
	Argon2Parallelism uint8  `envconfig:"ARGON2_PARALLELISM" default:"2"`

	// Search-as-you-type delay
	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"300ms"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	SecretsDir string `envconfig:"SECRETS_DIR" default:"/run/secrets"`
}

// GetAllowedOrigins splits CORSAllowedOrigins into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// Database returns the fixed connection settings for the store.
func (c *Config) Database() database.Config {
	return database.Config{
		Host:        c.DBHost,
		Port:        c.DBPort,
		User:        c.DBUser,
		Password:    c.DBPassword,
		Name:        c.DBName,
		SSLMode:     c.DBSSLMode,
		MaxConns:    c.DBMaxConns,
		IdleTimeout: c.DBIdleTimeout,
	}
}

// Logger returns the logger settings.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.LogLevel,
		Encoding:   c.LogFormat,
		OutputPath: c.LogFile,
	}
}

// Argon2 returns the password hashing parameters.
func (c *Config) Argon2() auth.Params {
	p := auth.DefaultParams()
	p.Memory = c.Argon2MemoryKiB
	p.Iterations = c.Argon2Iterations
	p.Parallelism = c.Argon2Parallelism
	return p
}

// LoadConfig loads configuration from an optional .env file, environment
// variables and secret files.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	var err error
	cfg.DBPassword, err = readSecret(cfg.SecretsDir, "db_password", "DB_PASSWORD")
	if err != nil {
		return nil, err
	}
	cfg.JWTSecret, err = readSecret(cfg.SecretsDir, "jwt_secret", "JWT_SECRET")
	if err != nil {
		return nil, err
	}
	// Optional
	if redisPass, err := readSecret(cfg.SecretsDir, "redis_password", "REDIS_PASSWORD"); err == nil {
		cfg.RedisPassword = redisPass
	}

	if err := cfg.Argon2().Validate(); err != nil {
		return nil, fmt.Errorf("invalid password hashing settings: %w", err)
	}

	return &cfg, nil
}

// readSecret reads a secret file from dir. For local runs without mounted
// secrets the environment variable envKey is used instead.
func readSecret(dir, name, envKey string) (string, error) {
	path := filepath.Join(dir, name)
	secretBytes, err := os.ReadFile(path)
	if err != nil {
		if value, ok := os.LookupEnv(envKey); ok && value != "" {
			return value, nil
		}
		return "", fmt.Errorf("failed to read secret file %s: %w", path, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", path)
	}
	return secret, nil
}
