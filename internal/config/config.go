package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	// Path is the SQLite database file, or ":memory:" for an ephemeral store.
	Path string
	// BackupDir is where VACUUM INTO snapshots are written.
	BackupDir string
}

type JWTConfig struct {
	Secret string
	// AccessExpireMinutes bounds the lifetime of access tokens.
	AccessExpireMinutes int
	// RefreshExpireDays is the refresh token lifetime for plain sessions.
	RefreshExpireDays int
	// PersistentSessionExpireDays applies when the caller asks to be remembered.
	PersistentSessionExpireDays int
}

type CookieConfig struct {
	// Name of the httponly refresh cookie.
	Name     string
	Secure   bool
	Domain   string
	SameSite string // "lax", "strict" or "none"
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Path:      viper.GetString("DATABASE_PATH"),
			BackupDir: viper.GetString("BACKUP_DIR"),
		},
		JWT: JWTConfig{
			Secret:                      viper.GetString("JWT_SECRET"),
			AccessExpireMinutes:         viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES"),
			RefreshExpireDays:           viper.GetInt("REFRESH_TOKEN_EXPIRE_DAYS"),
			PersistentSessionExpireDays: viper.GetInt("PERSISTENT_SESSION_EXPIRE_DAYS"),
		},
		Cookie: CookieConfig{
			Name:     viper.GetString("COOKIE_NAME"),
			Secure:   viper.GetBool("COOKIE_SECURE"),
			Domain:   viper.GetString("COOKIE_DOMAIN"),
			SameSite: viper.GetString("COOKIE_SAMESITE"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("DATABASE_PATH", "./data/stocky.db")
	viper.SetDefault("BACKUP_DIR", "./data/backups")
	viper.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	viper.SetDefault("REFRESH_TOKEN_EXPIRE_DAYS", 7)
	viper.SetDefault("PERSISTENT_SESSION_EXPIRE_DAYS", 30)
	viper.SetDefault("COOKIE_NAME", "stocky_refresh_token")
	viper.SetDefault("COOKIE_SAMESITE", "lax")
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 100)
}
