package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	MetricsPort   string `mapstructure:"METRICS_PORT"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	HooksFile     string `mapstructure:"HOOKS_FILE"`

	// Delivery settings: the master switch, the endpoint and the shared secret
	WebhooksEnabled bool   `mapstructure:"WEBHOOKS_ENABLED"`
	WebhookURL      string `mapstructure:"WEBHOOK_URL"`
	WebhookSecret   string `mapstructure:"WEBHOOK_SECRET"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}
