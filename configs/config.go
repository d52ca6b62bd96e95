package configs

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

// Load reads configs/config.yaml with environment overrides. Missing file is
// fine; defaults cover local development.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("server.port", "8000")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "rapidgigs")
	v.SetDefault("database.password", "rapidgigs")
	v.SetDefault("database.name", "rapidgigs")
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("jwt.secret", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return &Config{Viper: v}, nil
}

func (c *Config) JwtKey() []byte {
	return []byte(c.Viper.GetString("jwt.secret"))
}
