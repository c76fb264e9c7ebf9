package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Alpaca Alpaca `mapstructure:"alpaca"`
	Server Server `mapstructure:"server"`
	Logger Logger `mapstructure:"logger"`
}

// Alpaca holds the credentials for the Alpaca paper-trading API.
// The base URLs are fixed; only the key pair is configurable.
type Alpaca struct {
	ApiKey    string `mapstructure:"api_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Server holds the configuration for the HTTP server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error: the service can run entirely
// from environment variables (ALPACA_API_KEY, ALPACA_SECRET_KEY).
//
// Missing credentials do not block startup. The defaults below are
// placeholders, so every Alpaca call made with them fails at request
// time; callers see that failure through the normal error envelope.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("alpaca.api_key", "YOUR_ALPACA_KEY")
	viper.SetDefault("alpaca.secret_key", "YOUR_ALPACA_SECRET")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
