package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SqliteConf configures the database file and its connection pool.
type SqliteConf struct {
	Path                   string `mapstructure:"path"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int    `mapstructure:"conn_max_lifetime_seconds"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Dev   bool   `mapstructure:"dev"`
}

// Config is the config for the application. It is read once at startup and
// treated as read-only from then on.
type Config struct {
	Addr      string     `mapstructure:"addr"`
	InviteKey string     `mapstructure:"invite_key"`
	Sqlite    SqliteConf `mapstructure:"sqlite"`
	Log       LogConf    `mapstructure:"log"`

	// derived
	ConnMaxLifetime time.Duration
}

// Load reads the config file at path, applying QMH_* environment overrides
// and defaults for everything except the invite key.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("QMH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("invite_key", "")
	v.SetDefault("sqlite.path", "media.db")
	v.SetDefault("sqlite.max_open_conns", 8)
	v.SetDefault("sqlite.max_idle_conns", 4)
	v.SetDefault("sqlite.conn_max_lifetime_seconds", 300)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.InviteKey == "" {
		return nil, errors.New("config: invite_key is required")
	}

	cfg.ConnMaxLifetime = time.Duration(cfg.Sqlite.ConnMaxLifetimeSeconds) * time.Second

	return &cfg, nil
}
