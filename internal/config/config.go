package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddr         = ":8080"
	defaultBaseURL         = "http://localhost:8080"
	defaultValidityMinutes = 30
	defaultTLSCertPath     = "./certs/cert.pem"
	defaultTLSKeyPath      = "./certs/private.pem"
)

type ServerConfig struct {
	RunAddr                string `env:"SERVER_ADDRESS" json:"server_address"`
	RedirectBaseURL        string `env:"BASE_URL" json:"base_url"`
	FileStoragePath        string `env:"FILE_STORAGE_PATH" json:"file_storage_path"`
	DatabaseDSN            string `env:"DATABASE_DSN" json:"database_dsn"`
	RedisAddr              string `env:"REDIS_ADDR" json:"redis_addr"`
	DefaultValidityMinutes int    `env:"DEFAULT_VALIDITY_MINUTES" json:"default_validity_minutes"`
	LogAPIURL              string `env:"LOG_API_URL" json:"log_api_url"`
	LogClientID            string `env:"LOG_CLIENT_ID" json:"log_client_id"`
	LogClientSecret        string `env:"LOG_CLIENT_SECRET" json:"log_client_secret"`
	TLSCertPath            string `env:"TLS_CERT_PATH" json:"tls_cert_path"`
	TLSKeyPath             string `env:"TLS_KEY_PATH" json:"tls_key_path"`
	Config                 string `env:"CONFIG" json:"-"`
	EnableHTTPS            bool   `env:"ENABLE_HTTPS" json:"enable_https"`
	ProfileMode            bool   `env:"PROFILE_MODE" json:"profile_mode"`
}

var config ServerConfig

// ParseFlags merges, in increasing priority: JSON config file, flag
// defaults and flags, environment variables. A .env file is loaded
// first when present.
func ParseFlags() (*ServerConfig, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	flag.StringVar(&config.RunAddr, "a", defaultRunAddr, "address and port to run server")
	flag.StringVar(&config.RedirectBaseURL, "b", defaultBaseURL, "server URI prefix")
	flag.StringVar(&config.FileStoragePath, "f", "", "file storage path")
	flag.StringVar(&config.DatabaseDSN, "d", "", "Data Source Name (DSN)")
	flag.StringVar(&config.RedisAddr, "r", "", "redis address")
	flag.IntVar(&config.DefaultValidityMinutes, "v", defaultValidityMinutes, "default validity period, minutes")
	flag.StringVar(&config.LogAPIURL, "l", "", "remote log sink base URL")
	flag.StringVar(&config.Config, "c", "", "path to JSON config file")
	flag.BoolVar(&config.EnableHTTPS, "s", false, "enable HTTPS")
	flag.BoolVar(&config.ProfileMode, "p", false, "enable pprof endpoints")
	flag.Parse()

	if config.Config != "" {
		if err := loadConfigFile(config.Config, &config); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("error parsing env variables: %w", err)
	}

	if config.TLSCertPath == "" {
		config.TLSCertPath = defaultTLSCertPath
	}
	if config.TLSKeyPath == "" {
		config.TLSKeyPath = defaultTLSKeyPath
	}

	return &config, nil
}

func loadConfigFile(path string, cfg *ServerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	fileCfg := ServerConfig{}
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	// Flags already holding non-default values win over the file.
	if cfg.RunAddr == defaultRunAddr && fileCfg.RunAddr != "" {
		cfg.RunAddr = fileCfg.RunAddr
	}
	if cfg.RedirectBaseURL == defaultBaseURL && fileCfg.RedirectBaseURL != "" {
		cfg.RedirectBaseURL = fileCfg.RedirectBaseURL
	}
	if cfg.FileStoragePath == "" {
		cfg.FileStoragePath = fileCfg.FileStoragePath
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fileCfg.DatabaseDSN
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = fileCfg.RedisAddr
	}
	if cfg.DefaultValidityMinutes == defaultValidityMinutes && fileCfg.DefaultValidityMinutes != 0 {
		cfg.DefaultValidityMinutes = fileCfg.DefaultValidityMinutes
	}
	if cfg.LogAPIURL == "" {
		cfg.LogAPIURL = fileCfg.LogAPIURL
	}
	if cfg.LogClientID == "" {
		cfg.LogClientID = fileCfg.LogClientID
	}
	if cfg.LogClientSecret == "" {
		cfg.LogClientSecret = fileCfg.LogClientSecret
	}
	if cfg.TLSCertPath == "" {
		cfg.TLSCertPath = fileCfg.TLSCertPath
	}
	if cfg.TLSKeyPath == "" {
		cfg.TLSKeyPath = fileCfg.TLSKeyPath
	}
	if !cfg.EnableHTTPS {
		cfg.EnableHTTPS = fileCfg.EnableHTTPS
	}
	if !cfg.ProfileMode {
		cfg.ProfileMode = fileCfg.ProfileMode
	}

	return nil
}
