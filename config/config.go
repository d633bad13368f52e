// config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the settings for the demo server.
type Config struct {
	// runtime
	Env      string `mapstructure:"env"`       // "dev" | "prod"
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error …

	// HTTP
	HTTPPort int `mapstructure:"http_port"`

	// directive defaults applied when a page does not say otherwise
	RemoveBlank bool `mapstructure:"remove_blank"`
	RemoveUTM   bool `mapstructure:"remove_utm"`
}

// Load merges defaults → config file → env vars → explicit flags into one
// Config. Final precedence (highest wins): flags > env > config > defaults.
func Load(logger *zap.Logger) (*Config, error) {
	// Optionally load .env; real env still wins over .env.
	if err := godotenv.Load(); err == nil && logger != nil {
		logger.Info("Loaded .env file")
	}

	pflag.String("env", "dev", `Runtime environment "dev"|"prod"`)
	pflag.String("log_level", "debug", "Log level")
	pflag.Int("http_port", 8080, "HTTP port")
	pflag.Bool("remove_blank", true, "Strip blank-valued query parameters by default")
	pflag.Bool("remove_utm", true, "Strip utm_* tracking parameters by default")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix("QUERYTAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if logger != nil {
		logger.Info("Loaded config file", zap.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
