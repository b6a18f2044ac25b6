package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Donation event stream
	KafkaBrokers        []string
	KafkaDonationsTopic string
	KafkaConsumerGroup  string

	// Requests per client, limiter format (e.g. "300-M" is 300 per minute)
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_DONATIONS_TOPIC", "donation_settled")
	viper.SetDefault("KAFKA_CONSUMER_GROUP", "fundledger")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	// An empty broker list disables the consumer; donations can still be
	// ingested over HTTP.
	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaDonationsTopic = viper.GetString("KAFKA_DONATIONS_TOPIC")
	cfg.KafkaConsumerGroup = viper.GetString("KAFKA_CONSUMER_GROUP")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
