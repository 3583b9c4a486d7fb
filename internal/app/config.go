package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "secureai/pkg/errors"
	"secureai/pkg/logger"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home        string        `mapstructure:"home"`         // state directory, e.g. $HOME/.secureai
	PostgresDSN string        `mapstructure:"postgres_dsn"` // when set, stores live in Postgres
	AMQPURL     string        `mapstructure:"amqp_url"`     // when set, the feed runs over AMQP
	Passphrase  string        `mapstructure:"passphrase"`   // protects file-backed private keys
	Logger      logger.Config `mapstructure:"logger"`
}

// LoadConfig reads configuration from (in increasing precedence) the config
// file, SECUREAI_* environment variables, and any values already set on v by
// the caller. A missing config file is not an error; everything has a
// workable default for local use.
func LoadConfig(v *viper.Viper, configPath string) (Config, error) {
	v.SetConfigName("secureai")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".secureai"))
		}
	}

	v.SetEnvPrefix("SECUREAI")
	v.AutomaticEnv()

	v.SetDefault("home", defaultHome())
	v.SetDefault("logger.development", false)
	v.SetDefault("logger.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, apperrors.Internal("read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, apperrors.Internal("parse config", err)
	}
	return cfg, nil
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".secureai"
	}
	return filepath.Join(home, ".secureai")
}
