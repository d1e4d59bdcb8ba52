package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Database DatabaseConfig
	Feed     FeedConfig
	Sync     SyncConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// FeedConfig for the social feed recent-search endpoint
type FeedConfig struct {
	SearchURL      string
	Timeout        time.Duration
	TokenParameter string
}

// SyncConfig for the periodic ingestion cycle
type SyncConfig struct {
	Interval        time.Duration
	CursorParameter string
	CleanupInterval time.Duration
	DiscordURL      string
}

type HTTPConfig struct {
	Addr string
}

type LoggingConfig struct {
	Level    string
	FilePath string
}

// defaultSearchURL targets the MARTA service account's alert posts,
// newest first, with creation timestamps included.
const defaultSearchURL = "https://api.twitter.com/2/tweets/search/recent?query=from%3AMARTAservice+route&sort_order=recency&tweet.fields=created_at"

func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "martatracker"),
		},
		Feed: FeedConfig{
			SearchURL:      getEnv("FEED_SEARCH_URL", defaultSearchURL),
			Timeout:        getDurationEnv("FEED_TIMEOUT", 10*time.Second),
			TokenParameter: getEnv("FEED_TOKEN_PARAMETER", "twitter_bearer_token"),
		},
		Sync: SyncConfig{
			Interval:        getDurationEnv("SYNC_INTERVAL", 5*time.Minute),
			CursorParameter: getEnv("SYNC_CURSOR_PARAMETER", "last_tweet_id"),
			CleanupInterval: getDurationEnv("ALERT_CLEANUP_INTERVAL", 1*time.Hour),
			DiscordURL:      getEnv("DISCORD_WEBHOOK_URL", ""),
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Logging: LoggingConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			FilePath: getEnv("LOG_FILE", "martatracker.log"),
		},
	}

	return cfg, nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

func (c *DatabaseConfig) Validate() error {
	if c.Host == "" || c.Port == "" || c.User == "" || c.DBName == "" {
		return fmt.Errorf("incomplete database configuration")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
