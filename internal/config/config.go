package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	JWT        JWTConfig
	Stripe     StripeConfig
	Cloudinary CloudinaryConfig
	Admin      AdminConfig
	LogLevel   string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// StripeConfig holds payment gateway configuration. MockGateway switches the
// whole payment flow to the in-memory gateway for local development.
type StripeConfig struct {
	SecretKey   string
	SuccessURL  string
	CancelURL   string
	MockGateway bool
}

// CloudinaryConfig holds media upload configuration
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// AdminConfig holds the bootstrap admin account seeded at startup
type AdminConfig struct {
	Email    string
	Password string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "5000")
	viper.SetDefault("Server.AllowedOrigins", []string{"http://localhost:5173"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "scholarsource")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Stripe.SuccessURL", "http://localhost:5173/payment/success?session_id={CHECKOUT_SESSION_ID}")
	viper.SetDefault("Stripe.CancelURL", "http://localhost:5173/payment/cancelled")
	viper.SetDefault("Stripe.MockGateway", false)
	viper.SetDefault("LogLevel", "info")
}
