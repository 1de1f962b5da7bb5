package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Mongo configuration (booking records).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Microsoft Graph configuration (external calendar + directory lists).
	GraphBaseURL        string        `mapstructure:"GRAPH_BASE_URL"`
	GraphTenantID       string        `mapstructure:"GRAPH_TENANT_ID"`
	GraphClientID       string        `mapstructure:"GRAPH_CLIENT_ID"`
	GraphClientSecret   string        `mapstructure:"GRAPH_CLIENT_SECRET"`
	GraphRequestTimeout time.Duration `mapstructure:"GRAPH_REQUEST_TIMEOUT"`
	SiteHostname        string        `mapstructure:"SHAREPOINT_SITE_HOSTNAME"`

	// Soft-hold behaviour.
	HoldTTL           time.Duration `mapstructure:"HOLD_TTL"`
	HoldSweepInterval time.Duration `mapstructure:"HOLD_SWEEP_INTERVAL"`

	// Reminders and notifications.
	ReminderLeadTime time.Duration `mapstructure:"REMINDER_LEAD_TIME"`
	NotifyWebhookURL string        `mapstructure:"NOTIFY_WEBHOOK_URL"`

	// Admin credential (bcrypt hash of the single administrative password).
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Origins allowed to embed the booking widget.
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "carebook")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0")
	viper.SetDefault("GRAPH_REQUEST_TIMEOUT", 10*time.Second)
	viper.SetDefault("HOLD_TTL", 300*time.Second)
	viper.SetDefault("HOLD_SWEEP_INTERVAL", 5*time.Second)
	viper.SetDefault("REMINDER_LEAD_TIME", 24*time.Hour)
	viper.SetDefault("ALLOWED_ORIGINS", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
