package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// Empty means run on the in-memory store (demo mode).
	DatabaseURL string `env:"DATABASE_URL"`

	Payment Payment `envPrefix:"PAYMENT_"`
}

type Payment struct {
	APIURL     string        `env:"API_URL"`
	APIKey     string        `env:"API_KEY"`
	SDKURL     string        `env:"SDK_URL"`
	MerchantID string        `env:"MERCHANT_ID"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
