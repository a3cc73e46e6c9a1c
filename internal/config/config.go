package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/recallbot/pkg/validator"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"env" validate:"oneof=development production staging"`
	Bot       BotConfig       `mapstructure:"bot"`
	DB        DBConfig        `mapstructure:"db"`
	Study     StudyConfig     `mapstructure:"study"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

type BotConfig struct {
	Token    string  `mapstructure:"token" validate:"required"`
	Debug    bool    `mapstructure:"debug"`
	AdminIDs []int64 `mapstructure:"admin_ids"`
	SendRate float64 `mapstructure:"send_rate" validate:"gt=0,lte=30"` // messages per second
}

// IsAdmin reports whether the Telegram user may import word lists.
func (c BotConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type DBConfig struct {
	Driver          string        `mapstructure:"driver" validate:"oneof=sqlite3 postgres"`
	DSN             string        `mapstructure:"dsn" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=1,max=1000"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0,max=100"`
	ConnMaxLifeTime time.Duration `mapstructure:"conn_max_life_time" validate:"min=0"`
}

type StudyConfig struct {
	SetSize          int     `mapstructure:"set_size" validate:"min=1,max=50"`
	DesiredRetention float64 `mapstructure:"desired_retention" validate:"gt=0,lt=1"`
	MaximumInterval  int     `mapstructure:"maximum_interval" validate:"min=1"` // days
	Timezone         string  `mapstructure:"timezone" validate:"required"`
}

// Location resolves the timezone used for day boundaries in study logs.
func (c StudyConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid study.timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

type RemindersConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	StartHour int  `mapstructure:"start_hour" validate:"min=0,max=23"`
	EndHour   int  `mapstructure:"end_hour" validate:"min=0,max=23,gtefield=StartHour"`
	Every     int  `mapstructure:"every" validate:"min=1,max=24"` // hours between checks
}

var envBindings = map[string]string{
	"env":           "APP_ENV",
	"bot.token":     "TELEGRAM_BOT_TOKEN",
	"bot.debug":     "BOT_DEBUG",
	"bot.admin_ids": "BOT_ADMIN_IDS",
	"db.driver":     "DB_DRIVER",
	"db.dsn":        "DB_DSN",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("bot.send_rate", 20)
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "data/recallbot.db")
	v.SetDefault("db.max_open_conns", 1)
	v.SetDefault("db.max_idle_conns", 1)
	v.SetDefault("db.conn_max_life_time", "1h")
	v.SetDefault("study.set_size", 5)
	v.SetDefault("study.desired_retention", 0.9)
	v.SetDefault("study.maximum_interval", 36500)
	v.SetDefault("study.timezone", "Asia/Tokyo")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.start_hour", 8)
	v.SetDefault("reminders.end_hour", 22)
	v.SetDefault("reminders.every", 1)
}

// Init loads .env (if present), then configs/<CONFIG_NAME>.yaml, then the
// environment. A missing config file leaves the defaults in place.
func Init() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	configName := os.Getenv("CONFIG_NAME")
	if configName == "" {
		configName = "default"
	}

	return Load("configs", configName)
}

// Load reads the named config from dir and overlays environment variables.
func Load(dir, name string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName(name)
	v.SetConfigType("yaml")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	if _, err := cfg.Study.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
