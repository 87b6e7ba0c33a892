package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	BaseURL       string           `json:"base_url"`
	BcryptCost    int              `json:"bcrypt_cost"`
	TokenTTLHours int              `json:"token_ttl_hours"`
	CleanupSpec   string           `json:"cleanup_spec"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	Database      DatabaseConfig   `json:"database"`
	Mail          MailConfig       `json:"mail"`
	LogConfig     logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	if cfg.TokenTTLHours == 0 {
		cfg.TokenTTLHours = 6
	}
	if cfg.CleanupSpec == "" {
		cfg.CleanupSpec = "*/15 * * * *"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Mail.From == "" {
		return nil, fmt.Errorf("mail.from is required")
	}
	if cfg.Mail.Host == "" || cfg.Mail.Port == 0 {
		return nil, fmt.Errorf("mail.host and mail.port are required")
	}
	return &cfg, nil
}
