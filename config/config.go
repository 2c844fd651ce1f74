package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Payments.
	StripeKey      string `mapstructure:"STRIPE_KEY"`
	StripeCurrency string `mapstructure:"STRIPE_CURRENCY"`
	// RequirePayment rejects bookings created without a confirmed transaction.
	RequirePayment bool `mapstructure:"REQUIRE_PAYMENT"`

	// Lifecycle events for the mailer. Empty AMQP_URL keeps events in-process.
	AMQPURL     string `mapstructure:"AMQP_URL"`
	EventsTopic string `mapstructure:"EVENTS_TOPIC"`

	CloudinaryURL       string `mapstructure:"CLOUDINARY_URL"`
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`

	// Booking rules.
	Timezone                string `mapstructure:"TIMEZONE"`
	CancellationWindowHours int    `mapstructure:"CANCELLATION_WINDOW_HOURS"`
	ReminderLeadHours       int    `mapstructure:"REMINDER_LEAD_HOURS"`
	SalonCacheTTLSeconds    int    `mapstructure:"SALON_CACHE_TTL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := AppConfig.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
}

// ErrMissingJWTSecret is returned when production runs without a signing secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in production")

// Validate rejects settings the service must not start with.
func (c Config) Validate() error {
	if c.Env == "production" && c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "salonbook")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_CURRENCY", "usd")
	viper.SetDefault("REQUIRE_PAYMENT", false)
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("EVENTS_TOPIC", "booking.events")
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("FIREBASE_CREDENTIALS", "")
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("CANCELLATION_WINDOW_HOURS", 4)
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
	viper.SetDefault("SALON_CACHE_TTL_SECONDS", 300)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves the configured time zone, falling back to UTC.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using UTC", AppConfig.Timezone)
		return time.UTC
	}
	return loc
}

// CancellationWindow is the minimum notice required to cancel an appointment.
func CancellationWindow() time.Duration {
	if AppConfig.CancellationWindowHours <= 0 {
		return 4 * time.Hour
	}
	return time.Duration(AppConfig.CancellationWindowHours) * time.Hour
}

func ReminderLead() time.Duration {
	if AppConfig.ReminderLeadHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(AppConfig.ReminderLeadHours) * time.Hour
}

func SalonCacheTTL() time.Duration {
	if AppConfig.SalonCacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(AppConfig.SalonCacheTTLSeconds) * time.Second
}
