package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pacahon/slideshare"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// envKeys lists every key readable from the environment as SLIDOWN_<KEY>,
// plus the plain variable the deployment has always used, if any.
var envKeys = map[string]string{
	"slideshare.api_key":       "APIKEY",
	"slideshare.shared_secret": "SHAREDSECRET",
	"slideshare.username":      "",
	"slideshare.password":      "",
	"storage.bucket":           "BUCKETNAME",
	"server.create_pdf":        "CREATEPDF",
	"server.port":              "PORT",
	"gcp.project_id":           "PROJECTID",
}

// Load reads the configuration from configPath, or from config.yaml in the
// standard locations when empty, overlaid with the environment. A missing
// file is only an error when configPath is given.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".slidown"))
		}
		v.AddConfigPath("/etc/slidown/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("slideshare.base_url", slideshare.BaseURL)
	v.SetDefault("slideshare.timeout", "30s")
	v.SetDefault("slideshare.debug", false)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.create_pdf", false)
	v.SetDefault("server.max_file_size", 29360128) // 28MB
	v.SetDefault("server.download_timeout", "60s")
	v.SetDefault("server.cache_ttl", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.log_id", "slidown")
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("slidown")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envKeys {
		envs := []string{key, "SLIDOWN_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
		if alias != "" {
			envs = append(envs, alias)
		}
		// BindEnv only fails without a key.
		_ = v.BindEnv(envs...)
	}
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if err := cfg.Credentials().Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return errors.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return errors.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Server.MaxFileSize <= 0 {
		return errors.Errorf("server.max_file_size must be positive, got %d", cfg.Server.MaxFileSize)
	}

	return nil
}
