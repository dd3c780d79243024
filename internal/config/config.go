package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"

	SessionStoreRedis  = "redis"
	SessionStoreBolt   = "bolt"
	SessionStoreMemory = "memory"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Session     SessionConfig
	CORS        CORSConfig
	Storage     StorageConfig
	Tasks       TasksConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxConn      int
	// MaxBodySize caps GraphQL request bodies.
	MaxBodySize int
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type SessionConfig struct {
	Store         string
	Secret        string
	CookieName    string
	TTL           time.Duration
	BoltPath      string
	SweepSchedule string
}

type CORSConfig struct {
	Origin string
}

type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string
	UploadExpiry    time.Duration
}

type TasksConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	// Path overrides the embedded migrations with a directory on disk.
	Path string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults suitable for local development.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "taskmaster"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("HOST", "0.0.0.0"),
			Port:         getString("PORT", "4000"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:      getInt("SERVER_MAX_CONN", 0),
			MaxBodySize:  getInt("SERVER_MAX_BODY_SIZE", 1<<20),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getString("DATABASE_DRIVER", DriverPostgres)),
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "taskmaster"),
			User:            getString("DB_USER", "taskmaster"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getString("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getString("MONGODB_DATABASE", "taskmaster"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Store:         strings.ToLower(getString("SESSION_STORE", SessionStoreRedis)),
			Secret:        os.Getenv("SESSION_SECRET"),
			CookieName:    getString("SESSION_COOKIE_NAME", "tm.sid"),
			TTL:           getDuration("SESSION_TTL", 24*time.Hour),
			BoltPath:      getString("SESSION_BOLT_PATH", "./data/sessions.db"),
			SweepSchedule: getString("SESSION_SWEEP_SCHEDULE", "@every 10m"),
		},
		CORS: CORSConfig{
			Origin: getString("CORS_ORIGIN", "http://localhost:3000"),
		},
		Storage: StorageConfig{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Region:          getString("AWS_REGION", "us-east-1"),
			Bucket:          os.Getenv("S3_BUCKET_NAME"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			UploadExpiry:    getDuration("S3_UPLOAD_EXPIRY", 15*time.Minute),
		},
		Tasks: TasksConfig{
			DefaultLimit: getInt("TASKS_DEFAULT_LIMIT", 10),
			MaxLimit:     getInt("TASKS_MAX_LIMIT", 100),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    os.Getenv("MIGRATIONS_PATH"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg.Database)
	}
	if cfg.Session.Secret == "" && !cfg.IsProduction() {
		cfg.Session.Secret = "taskmaster-development-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver))
	}
	switch c.Session.Store {
	case SessionStoreRedis, SessionStoreBolt, SessionStoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Tasks.DefaultLimit <= 0 || c.Tasks.MaxLimit < c.Tasks.DefaultLimit {
		errs = append(errs, fmt.Errorf("invalid task limits: default %d, max %d", c.Tasks.DefaultLimit, c.Tasks.MaxLimit))
	}
	if c.IsProduction() && c.Storage.Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET_NAME is required in production"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

func buildPostgresURL(db DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
