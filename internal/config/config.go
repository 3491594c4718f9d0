package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  It is built once by Load
// in main and handed by value to the constructors that need it; nothing
// downstream reads the environment again.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	AdminPassword string // shared secret expected in the X-Admin-Password header
	CORSOrigins   []string

	DB         DBConfig
	Cloudinary CloudinaryConfig
	AMQPURL    string // broker for mailing-list events; empty disables publishing
	Redis      RedisConfig
	RateLimit  RateLimitConfig
}

// DBConfig describes the MySQL connection, pool and transient-retry policy.
type DBConfig struct {
	User            string
	Pass            string // optional
	Host            string
	Port            string
	Name            string
	Timeout         time.Duration // dial/read/write timeout placed in the DSN
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MaxRetries      int
	RetryInitial    time.Duration
	RetryMax        time.Duration
	AutoMigrate     bool
}

// CloudinaryConfig holds credentials for the image-upload collaborator.
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
}

// Enabled reports whether all three credentials are present.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// IsProd reports whether the service runs in production mode.
func (c Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod") || strings.EqualFold(c.Env, "production")
}

// Load reads an optional .env file and then the process environment.  All
// missing required variables are reported together in the returned error.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional; real env vars win over it

	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:           envStr("APP_ENV", "dev"),
		Port:          envStr("APP_PORT", "8000"),
		AdminPassword: must("ADMIN_PASSWORD"),
		CORSOrigins:   splitList(envStr("CORS_ALLOW_ORIGINS", "*")),
		DB: DBConfig{
			User:            must("DB_USER"),
			Pass:            os.Getenv("DB_PASS"),
			Host:            must("DB_HOST"),
			Port:            envStr("DB_PORT", "3306"),
			Name:            must("DB_NAME"),
			Timeout:         envDur("DB_TIMEOUT", 5*time.Second),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			MaxRetries:      envInt("DB_MAX_RETRIES", 3),
			RetryInitial:    envDur("DB_RETRY_INITIAL", 100*time.Millisecond),
			RetryMax:        envDur("DB_RETRY_MAX", 2*time.Second),
			AutoMigrate:     envBool("DB_AUTO_MIGRATE", true),
		},
		Cloudinary: CloudinaryConfig{
			CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:       os.Getenv("CLOUDINARY_API_KEY"),
			APISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
			UploadFolder: envStr("CLOUDINARY_UPLOAD_FOLDER", "event_posters"),
		},
		AMQPURL:   envStr("RABBITMQ_URL", os.Getenv("AMQP_URL")),
		Redis:     LoadRedisConfig(),
		RateLimit: LoadRateLimitConfig(),
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("invalid APP_PORT %q", cfg.Port)
	}
	if cfg.DB.MaxRetries < 0 {
		cfg.DB.MaxRetries = 0
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConsumerConfig configures cmd/subscription-log, which needs only the broker
// and a directory to write into.
type ConsumerConfig struct {
	Env     string
	AMQPURL string
	LogDir  string
}

// LoadConsumerConfig reads the consumer settings; the broker URL is required.
func LoadConsumerConfig() (ConsumerConfig, error) {
	_ = godotenv.Load()

	cfg := ConsumerConfig{
		Env:     envStr("APP_ENV", "dev"),
		AMQPURL: envStr("RABBITMQ_URL", os.Getenv("AMQP_URL")),
		LogDir:  envStr("SUBSCRIPTION_LOG_DIR", "logs"),
	}
	if strings.TrimSpace(cfg.AMQPURL) == "" {
		return ConsumerConfig{}, fmt.Errorf("missing required env vars: RABBITMQ_URL")
	}
	return cfg, nil
}
