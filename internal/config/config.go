/**
 * @description
 * This package handles the configuration management for the worker. It uses
 * the Viper library to read configuration from environment variables,
 * providing a centralized and straightforward way to manage application
 * settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the payments worker.
// These values are loaded from environment variables.
type Config struct {
	ServerPort               string `mapstructure:"SERVER_PORT"`
	RabbitMQURL              string `mapstructure:"RABBITMQ_URL"`
	PurchaseQueue            string `mapstructure:"PURCHASE_QUEUE"`
	PaymentQueue             string `mapstructure:"PAYMENT_QUEUE"`
	EventsExchange           string `mapstructure:"EVENTS_EXCHANGE"`
	PrefetchCount            int    `mapstructure:"PREFETCH_COUNT"`
	PaymentsAPIBaseURL       string `mapstructure:"PAYMENTS_API_BASE_URL"`
	PaymentsAPIInternalToken string `mapstructure:"PAYMENTS_API_INTERNAL_TOKEN"`
	StatusEventsTransport    string `mapstructure:"STATUS_EVENTS_TRANSPORT"`
	RedisURL                 string `mapstructure:"REDIS_URL"`
	CompletionDedupePrefix   string `mapstructure:"COMPLETION_DEDUPE_PREFIX"`
	CompletionDedupeTTLMin   int    `mapstructure:"COMPLETION_DEDUPE_TTL_MINUTES"`
}

// LoadConfig reads configuration from environment variables from the given
// path. It uses Viper to automatically bind environment variables to the
// Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("PURCHASE_QUEUE", "game-purchase-requested")
	viper.SetDefault("PAYMENT_QUEUE", "payments-to-process")
	viper.SetDefault("EVENTS_EXCHANGE", "payments.events")
	viper.SetDefault("PREFETCH_COUNT", 10)
	viper.SetDefault("STATUS_EVENTS_TRANSPORT", "amqp")
	viper.SetDefault("COMPLETION_DEDUPE_PREFIX", "fcg:payments:completed")
	viper.SetDefault("COMPLETION_DEDUPE_TTL_MINUTES", 1440)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("PURCHASE_QUEUE")
	_ = viper.BindEnv("PAYMENT_QUEUE")
	_ = viper.BindEnv("EVENTS_EXCHANGE")
	_ = viper.BindEnv("PREFETCH_COUNT")
	_ = viper.BindEnv("PAYMENTS_API_BASE_URL")
	_ = viper.BindEnv("PAYMENTS_API_INTERNAL_TOKEN", "PAYMENTS_API_INTERNAL_TOKEN", "PAYMENTS_INTERNAL_TOKEN")
	_ = viper.BindEnv("STATUS_EVENTS_TRANSPORT")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("COMPLETION_DEDUPE_PREFIX")
	_ = viper.BindEnv("COMPLETION_DEDUPE_TTL_MINUTES")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	config.PaymentsAPIBaseURL = strings.TrimRight(strings.TrimSpace(config.PaymentsAPIBaseURL), "/")
	config.PaymentsAPIInternalToken = strings.TrimSpace(config.PaymentsAPIInternalToken)
	config.RedisURL = strings.TrimSpace(config.RedisURL)

	config.StatusEventsTransport = strings.ToLower(strings.TrimSpace(config.StatusEventsTransport))
	if config.StatusEventsTransport != "log" {
		config.StatusEventsTransport = "amqp"
	}

	if config.PrefetchCount <= 0 {
		log.Printf("level=warn component=config msg=\"non-positive prefetch configured; using default\" prefetch=%d", config.PrefetchCount)
		config.PrefetchCount = 10
	}
	if config.CompletionDedupeTTLMin <= 0 {
		config.CompletionDedupeTTLMin = 1440
	}

	return
}
