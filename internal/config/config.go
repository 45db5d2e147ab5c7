package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Telegram TelegramConfig
	Admin    AdminConfig
	Report   ReportConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type TelegramConfig struct {
	BotToken    string
	ChatID      string
	Environment string
}

type AdminConfig struct {
	// PasswordHash is a PBKDF2 hash in salt$iterations$hash form.
	PasswordHash string
}

// ReportConfig describes the business week the workbook generator reports on:
// start date, length in days and the index at which first_half ends.
type ReportConfig struct {
	WindowStart string
	WindowDays  int
	WindowSplit int
	ArchiveDir  string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 60)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"https://ny2026.foodikal.rs", "https://foodikal.rs"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "foodikal")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
		viper.SetDefault("TELEGRAM_CHAT_ID", "")
		viper.SetDefault("ENVIRONMENT", "production")
		viper.SetDefault("ADMIN_PASSWORD_HASH", "")
		viper.SetDefault("REPORT_WINDOW_START", "2025-12-25")
		viper.SetDefault("REPORT_WINDOW_DAYS", 7)
		viper.SetDefault("REPORT_WINDOW_SPLIT", 4)
		viper.SetDefault("REPORT_ARCHIVE_DIR", "./data/reports")

		// Read from environment variables
		viper.AutomaticEnv()

		ensureDir(viper.GetString("REPORT_ARCHIVE_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
			},
			Telegram: TelegramConfig{
				BotToken:    viper.GetString("TELEGRAM_BOT_TOKEN"),
				ChatID:      viper.GetString("TELEGRAM_CHAT_ID"),
				Environment: viper.GetString("ENVIRONMENT"),
			},
			Admin: AdminConfig{
				PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
			},
			Report: ReportConfig{
				WindowStart: viper.GetString("REPORT_WINDOW_START"),
				WindowDays:  viper.GetInt("REPORT_WINDOW_DAYS"),
				WindowSplit: viper.GetInt("REPORT_WINDOW_SPLIT"),
				ArchiveDir:  viper.GetString("REPORT_ARCHIVE_DIR"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
