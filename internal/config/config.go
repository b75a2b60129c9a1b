package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	JWT           JWTConfig
	RabbitMQ      RabbitMQConfig
	Notifications NotificationConfig
	Logger        LoggerConfig
}

// AppConfig holds server-related configuration.
type AppConfig struct {
	Port string
}

// DatabaseConfig holds the GORM/Postgres connection settings.
type DatabaseConfig struct {
	DSN string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string
}

// RabbitMQConfig holds the order event stream settings. An empty URL
// disables event publishing.
type RabbitMQConfig struct {
	URL string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// NotificationConfig carries transport credentials and admin contacts for
// the notification channels. Every field is optional; a channel with
// missing credentials is silently disabled rather than erroring.
type NotificationConfig struct {
	AdminEmail string
	AdminPhone string

	// SMTP transport for the email channel.
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Twilio transport for the SMS and WhatsApp channels.
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioSMSFrom      string
	TwilioWhatsAppFrom string

	// Prefix attached to phone numbers that arrive without a country code.
	DefaultCountryCode string
}

// Load reads configuration from environment variables via Viper.
func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=scoops port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("DEFAULT_COUNTRY_CODE", "+91")
	viper.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
		},
		Database: DatabaseConfig{
			DSN: viper.GetString("DATABASE_DSN"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: viper.GetString("RABBITMQ_URL"),
		},
		Logger: LoggerConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Notifications: NotificationConfig{
			AdminEmail:         viper.GetString("ADMIN_EMAIL"),
			AdminPhone:         viper.GetString("ADMIN_PHONE"),
			SMTPHost:           viper.GetString("SMTP_HOST"),
			SMTPPort:           viper.GetInt("SMTP_PORT"),
			SMTPUser:           viper.GetString("SMTP_USER"),
			SMTPPassword:       viper.GetString("SMTP_PASSWORD"),
			SMTPFrom:           viper.GetString("SMTP_FROM"),
			TwilioAccountSID:   viper.GetString("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:    viper.GetString("TWILIO_AUTH_TOKEN"),
			TwilioSMSFrom:      viper.GetString("TWILIO_SMS_FROM"),
			TwilioWhatsAppFrom: viper.GetString("TWILIO_WHATSAPP_FROM"),
			DefaultCountryCode: viper.GetString("DEFAULT_COUNTRY_CODE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the app cannot run without.
// Notification settings are deliberately not validated here; missing
// credentials disable the channel instead.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("app port is required")
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}
