package config

import (
	"server/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Environment             string
	ServerHost              string
	ServerPort              int
	DatabaseDbPath          string
	DatabaseCacheAddress    string
	DatabaseCachePort       int
	SessionTTLMinutes       int
	PhoneDefaultCountryCode string
	AdminUsername           string
	AdminPassword           string
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetEnvPrefix("VOTE")
	viper.AutomaticEnv()

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DATABASE_DB_PATH", "data/election.db")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("SESSION_TTL_MINUTES", 120)
	viper.SetDefault("PHONE_DEFAULT_COUNTRY_CODE", "232")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")

	config := Config{
		Environment:             viper.GetString("ENVIRONMENT"),
		ServerHost:              viper.GetString("SERVER_HOST"),
		ServerPort:              viper.GetInt("SERVER_PORT"),
		DatabaseDbPath:          viper.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress:    viper.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:       viper.GetInt("DATABASE_CACHE_PORT"),
		SessionTTLMinutes:       viper.GetInt("SESSION_TTL_MINUTES"),
		PhoneDefaultCountryCode: viper.GetString("PHONE_DEFAULT_COUNTRY_CODE"),
		AdminUsername:           viper.GetString("ADMIN_USERNAME"),
		AdminPassword:           viper.GetString("ADMIN_PASSWORD"),
	}

	if config.DatabaseDbPath == "" {
		return Config{}, log.ErrMsg("database path is empty")
	}

	log.Info("Config initialized", "environment", config.Environment)
	return config, nil
}
