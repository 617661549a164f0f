package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string        `envconfig:"PORT" default:"8080"`
	GinMode        string        `envconfig:"GIN_MODE" default:"debug"`
	APIVersion     string        `envconfig:"API_VERSION" default:"v1"`
	APIPrefix      string        `envconfig:"API_PREFIX" default:"/api"`
	ReadTimeout    time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout    time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes int           `envconfig:"MAX_HEADER_BYTES" default:"1048576"` // 1 MB

	// Proxies whose X-Forwarded-For is honoured when resolving the client IP
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	// External attendance service
	Attendance AttendanceConfig `ignored:"true"`

	// Event details shown on both pages
	Event EventConfig `ignored:"true"`

	// Registration submit behaviour
	Registration RegistrationConfig `ignored:"true"`

	// Redis configuration
	Redis RedisConfig `ignored:"true"`

	// Rate limiting
	RateLimit RateLimitConfig `ignored:"true"`

	// Kafka notifications
	Kafka KafkaConfig `ignored:"true"`

	// Database configuration (development attendance service only)
	Database DatabaseConfig `ignored:"true"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
}

// AttendanceConfig points the site at the attendance service
type AttendanceConfig struct {
	// BaseURL is deliberately not required; an empty value surfaces as
	// failed calls at request time.
	BaseURL string        `envconfig:"ATTENDANCE_API_URL"`
	Timeout time.Duration `envconfig:"ATTENDANCE_TIMEOUT" default:"10s"`
}

// EventConfig holds the event copy rendered on the pages
type EventConfig struct {
	Title    string `envconfig:"EVENT_TITLE" default:"Iftar Invitation"`
	Subtitle string `envconfig:"EVENT_SUBTITLE" default:"Join us for a blessed evening of breaking fast together"`
	DateTime string `envconfig:"EVENT_DATE_TIME" default:"Friday, April 5th, 2024 at Sunset (7:30 PM)"`
	Welcome  string `envconfig:"EVENT_WELCOME_DATE" default:"Friday, April 5th at 7:30 PM"`
	Location string `envconfig:"EVENT_LOCATION" default:"Community Center, 123 Main Street"`
	Quote    string `envconfig:"EVENT_QUOTE" default:"\"O you who have believed, decreed upon you is fasting as it was decreed upon those before you that you may become righteous.\" - Quran 2:183"`
	Footer   string `envconfig:"EVENT_FOOTER" default:"We look forward to sharing this blessed moment with you."`
}

// RegistrationConfig controls what happens when the attendance service rejects a submission
type RegistrationConfig struct {
	RequireConfirmation bool `envconfig:"REGISTRATION_REQUIRE_CONFIRMATION" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Addr     string `ignored:"true"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled              bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	WindowDuration       time.Duration `envconfig:"RATE_LIMIT_WINDOW_DURATION" default:"60s"`
	DefaultRequests      int           `envconfig:"RATE_LIMIT_DEFAULT_REQUESTS" default:"120"`
	PageRequests         int           `envconfig:"RATE_LIMIT_PAGE_REQUESTS" default:"120"`
	RegistrationRequests int           `envconfig:"RATE_LIMIT_REGISTRATION_REQUESTS" default:"10"`
	APIRequests          int           `envconfig:"RATE_LIMIT_API_REQUESTS" default:"60"`
	HealthRequests       int           `envconfig:"RATE_LIMIT_HEALTH_REQUESTS" default:"600"`
	WhitelistedIPs       []string      `envconfig:"RATE_LIMIT_WHITELISTED_IPS"`
}

// KafkaConfig holds the notification producer configuration
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"registrations"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"iftar_db"`
	User     string `envconfig:"DB_USER" default:"iftar_user"`
	Password string `envconfig:"DB_PASSWORD" default:"iftar_password"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DSN      string `ignored:"true"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Sections are processed on their own with fully qualified keys so a
	// bare PORT or USER in the environment never leaks into a section.
	targets := []interface{}{
		cfg,
		&cfg.Attendance,
		&cfg.Event,
		&cfg.Registration,
		&cfg.Redis,
		&cfg.RateLimit,
		&cfg.Kafka,
		&cfg.Database,
	}
	for _, target := range targets {
		if err := envconfig.Process("", target); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	if cfg.Redis.Host != "" {
		cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port
	}

	return cfg, nil
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}

// KafkaEnabled reports whether registration notifications should be published
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// RedisEnabled reports whether a Redis host was configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}
