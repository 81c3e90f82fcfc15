package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultRecipesURL is the catalog endpoint used when recipes_url is unset.
const DefaultRecipesURL = "https://d3jbb8n5wk0qxi.cloudfront.net/recipes.json"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName              string        `mapstructure:"app_name" validate:"required"`
	Env                  string        `mapstructure:"app_env"`
	LogLevel             string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	RecipesURL           string        `mapstructure:"recipes_url" validate:"required,url"`
	PublishersFile       string        `mapstructure:"publishers_file"`
	WatchIntervalSeconds int64         `mapstructure:"watch_interval" validate:"gt=0"`
	WatchInterval        time.Duration `mapstructure:"-"`
	ListenAddr           string        `mapstructure:"listen_addr" validate:"required"`

	PreviewRatePerSecond float64 `mapstructure:"preview_rate_per_second" validate:"gt=0"`
	PreviewBurst         int     `mapstructure:"preview_burst" validate:"gte=1"`
}

var validate = validator.New()

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "samvad-recipes")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("recipes_url", DefaultRecipesURL)
	v.SetDefault("publishers_file", "")
	v.SetDefault("watch_interval", 300) // seconds
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("preview_rate_per_second", 2.0)
	v.SetDefault("preview_burst", 1)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.WatchInterval = time.Duration(cfg.WatchIntervalSeconds) * time.Second

	return &cfg, nil
}
