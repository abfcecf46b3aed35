// Package config assembles the application configuration from defaults,
// command-line flags, a .env file and environment variables, in ascending
// priority of flags < environment.
package config

import (
	"flag"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/patric-chuzhbe/tinylinks/internal/logger"
)

// Config holds all runtime settings of the service.
type Config struct {
	RunAddr        string `env:"SERVER_ADDRESS" validate:"hostname_port"`
	ShortURLBase   string `env:"BASE_URL" validate:"url"`
	LogLevel       string `env:"LOG_LEVEL" validate:"loglevel"`
	AuthCookieName string `env:"AUTH_COOKIE_NAME" validate:"required"`
	AuthSecretKey  string `env:"AUTH_SECRET_KEY" validate:"required"`
}

var defaultConfig = Config{
	RunAddr:        ":8080",
	ShortURLBase:   "http://localhost:8080",
	LogLevel:       "info",
	AuthCookieName: "tinylinks_auth",
	AuthSecretKey:  "supersecretkey",
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[fieldLevel.Field().String()]
}

func (c *Config) validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}

	return validate.Struct(c)
}

// Option customizes New.
type Option func(*options)

type options struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing prevents New from touching the flag package, which
// tests need because the testing binary registers its own flags.
func WithDisableFlagsParsing(disable bool) Option {
	return func(o *options) {
		o.disableFlagsParsing = disable
	}
}

// New builds and validates the configuration.
func New(optionsProto ...Option) (*Config, error) {
	opts := &options{}
	for _, protoOption := range optionsProto {
		protoOption(opts)
	}

	if err := godotenv.Load(); err != nil {
		logger.Log.Debugf("Unable to load .env file: %v", err)
	}

	cfg := defaultConfig

	if !opts.disableFlagsParsing {
		flag.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "address and port to run server")
		flag.StringVar(&cfg.ShortURLBase, "b", cfg.ShortURLBase, "base address of the resulting shortened URL")
		flag.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "logger level")
		flag.StringVar(&cfg.AuthCookieName, "c", cfg.AuthCookieName, "name of the authentication cookie")
		flag.Parse()
	}

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return nil, err
	}

	if fromEnv.RunAddr != "" {
		cfg.RunAddr = fromEnv.RunAddr
	}
	if fromEnv.ShortURLBase != "" {
		cfg.ShortURLBase = fromEnv.ShortURLBase
	}
	if fromEnv.LogLevel != "" {
		cfg.LogLevel = fromEnv.LogLevel
	}
	if fromEnv.AuthCookieName != "" {
		cfg.AuthCookieName = fromEnv.AuthCookieName
	}
	if fromEnv.AuthSecretKey != "" {
		cfg.AuthSecretKey = fromEnv.AuthSecretKey
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
