package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Extractor ExtractorConfig
	Reminder  ReminderConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ExtractorConfig points at the external AI document-extraction service.
type ExtractorConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ReminderConfig controls the dose-reminder scheduler timings.
type ReminderConfig struct {
	SnoozeDelay time.Duration
	RetryDelay  time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	extractorTimeout, err := time.ParseDuration(viper.GetString("EXTRACTOR_TIMEOUT"))
	if err != nil {
		extractorTimeout = 120 * time.Second
	}

	snoozeDelay, err := time.ParseDuration(viper.GetString("REMINDER_SNOOZE_DELAY"))
	if err != nil {
		snoozeDelay = 15 * time.Minute
	}

	retryDelay, err := time.ParseDuration(viper.GetString("REMINDER_RETRY_DELAY"))
	if err != nil {
		retryDelay = 60 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Extractor: ExtractorConfig{
			BaseURL: viper.GetString("EXTRACTOR_BASE_URL"),
			APIKey:  viper.GetString("EXTRACTOR_API_KEY"),
			Timeout: extractorTimeout,
		},
		Reminder: ReminderConfig{
			SnoozeDelay: snoozeDelay,
			RetryDelay:  retryDelay,
		},
	}

	return config, nil
}
