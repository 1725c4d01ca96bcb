package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/ikonesteve/email-imap-proxy/internal/logger"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

type AppConfig struct {
	APIPort     string `env:"PORT" envDefault:"12223"`
	APIKey      string `env:"API_KEY"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"email-imap-proxy"`
}

type Config struct {
	AppConfig *AppConfig
	Logger    *logger.Config
	Tracing   *tracing.JaegerConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig: &AppConfig{},
		Logger:    &logger.Config{},
		Tracing:   &tracing.JaegerConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
