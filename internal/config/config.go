package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Notify  NotifyConfig
	Blob    BlobConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  int
	WriteTimeout int
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	HostUsername string
	HostPassword string
	JWTSecret    string
}

type NotifyConfig struct {
	Endpoint   string
	APIKey     string
	TimeoutSec int
}

type BlobConfig struct {
	Endpoint   string
	TimeoutSec int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

// Load reads config.yaml (if present) with environment overrides, for
// example TEAMPULSE_MONGO_URI.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("TEAMPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine, defaults + env cover local dev
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readtimeout", 15)
	viper.SetDefault("server.writetimeout", 30)

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "teampulse")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("auth.hostusername", "admin")
	viper.SetDefault("auth.hostpassword", "password123")
	viper.SetDefault("auth.jwtsecret", "super-secret-key-change-in-production")

	viper.SetDefault("notify.endpoint", "http://localhost:8090/v1/messages")
	viper.SetDefault("notify.apikey", "")
	viper.SetDefault("notify.timeoutsec", 5)

	viper.SetDefault("blob.endpoint", "http://localhost:8091")
	viper.SetDefault("blob.timeoutsec", 5)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputpath", "stdout")
}
