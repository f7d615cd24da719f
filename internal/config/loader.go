package config

import (
	"fmt"

	"github.com/beatworks/workshop-dashboard/internal/db"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	ServerAddr     string
	AllowedOrigins []string

	Database db.Config

	BlobBaseURL string
	BlobToken   string

	AnthropicAPIKey string
	AnthropicModel  string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ServerAddr:     ":8080",
		AllowedOrigins: []string{"http://localhost:5173"},
		Database:       db.DefaultConfig(),
		AnthropicModel: "claude-sonnet-4-20250514",
	}
}

// Load reads config.yaml from configPath with environment overrides.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv() // allow environment overrides
	v.SetEnvPrefix("APP")

	// Map nested keys to flat env vars like APP_SERVER_ADDR
	v.BindEnv("server.addr")
	v.BindEnv("server.allowed_origins")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("blob.base_url")
	v.BindEnv("blob.token")
	v.BindEnv("anthropic.api_key")
	v.BindEnv("anthropic.model")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.ServerAddr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("blob.base_url") {
		cfg.BlobBaseURL = v.GetString("blob.base_url")
	}
	if v.IsSet("blob.token") {
		cfg.BlobToken = v.GetString("blob.token")
	}
	if v.IsSet("anthropic.api_key") {
		cfg.AnthropicAPIKey = v.GetString("anthropic.api_key")
	}
	if v.IsSet("anthropic.model") {
		cfg.AnthropicModel = v.GetString("anthropic.model")
	}

	return cfg, nil
}
