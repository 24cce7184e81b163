package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/louisuxu-sys/BC-LINE/database"
	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// LINE configuration
	LineChannelSecret string
	LineAccessToken   string

	// Discord configuration
	DiscordToken string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP listener for the LINE webhook
	HTTPAddr string

	// User ids that may generate redemption codes and never expire
	AdminUserIDs []string

	// NATS configuration. Empty disables the event bridge.
	NATSServers string

	// Bot configuration
	HistoryLimit int
	SessionTTL   time.Duration

	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// LineEnabled reports whether the LINE webhook should be served
func (c *Config) LineEnabled() bool {
	return c.LineChannelSecret != "" && c.LineAccessToken != ""
}

// DiscordEnabled reports whether the Discord frontend should be started
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

// NATSEnabled reports whether bus events are forwarded to NATS
func (c *Config) NATSEnabled() bool {
	return c.NATSServers != ""
}

// IsProduction reports whether the process runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// load loads configuration from a .env file, when present, and the environment
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	config := &Config{
		// LINE
		LineChannelSecret: os.Getenv("LINE_CHANNEL_SECRET"),
		LineAccessToken:   os.Getenv("LINE_ACCESS_TOKEN"),

		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		HTTPAddr:     getEnvWithDefault("HTTP_ADDR", ":5001"),
		AdminUserIDs: splitList(os.Getenv("ADMIN_USER_IDS")),
		NATSServers:  os.Getenv("NATS_SERVERS"),

		// Bot settings with defaults
		HistoryLimit: 90,
		SessionTTL:   24 * time.Hour,

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if limit := os.Getenv("HISTORY_LIMIT"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("HISTORY_LIMIT must be a positive integer, got %q", limit)
		}
		config.HistoryLimit = parsed
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", ttl)
		}
		config.SessionTTL = parsed
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings required to start outside of tests
func (c *Config) Validate() error {
	if c.Environment == "test" {
		return nil
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if (c.LineChannelSecret == "") != (c.LineAccessToken == "") {
		return fmt.Errorf("LINE_CHANNEL_SECRET and LINE_ACCESS_TOKEN must be set together")
	}
	if !c.LineEnabled() && !c.DiscordEnabled() {
		return fmt.Errorf("at least one of LINE_CHANNEL_SECRET/LINE_ACCESS_TOKEN or DISCORD_TOKEN is required")
	}
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	return nil
}

// ConfigureLogging applies the log level and picks the formatter for the environment
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("log_level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:  "test",
		HTTPAddr:     ":5001",
		AdminUserIDs: []string{"Uadmin"},
		HistoryLimit: 90,
		SessionTTL:   time.Hour,
		LogLevel:     "info",
	}
}
