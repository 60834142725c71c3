package config

import (
	"fmt"
	"time"

	"github.com/pacahon/slideshare"
	"github.com/pacahon/slideshare/library/log"
)

// Config represents the complete configuration structure
type Config struct {
	SlideShare SlideShareConfig `mapstructure:"slideshare"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	GCP        GCPConfig        `mapstructure:"gcp"`
}

// SlideShareConfig holds the API account and default user
type SlideShareConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	SharedSecret string        `mapstructure:"shared_secret"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Debug        bool          `mapstructure:"debug"`
}

// StorageConfig names the bucket large downloads are offloaded to
type StorageConfig struct {
	Bucket string `mapstructure:"bucket"`
}

// ServerConfig contains the download endpoint settings
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	CreatePDF       bool          `mapstructure:"create_pdf"`
	MaxFileSize     int64         `mapstructure:"max_file_size"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	LogID  string `mapstructure:"log_id"`
}

// GCPConfig enables Cloud Logging and trace export when ProjectID is set
type GCPConfig struct {
	ProjectID string `mapstructure:"project_id"`
}

// Credentials returns the API credentials for slideshare.NewClient
func (c *Config) Credentials() slideshare.Credentials {
	return slideshare.Credentials{
		APIKey:       c.SlideShare.APIKey,
		SharedSecret: c.SlideShare.SharedSecret,
		Username:     c.SlideShare.Username,
		Password:     c.SlideShare.Password,
	}
}

// ClientOptions translates the client settings
func (c *Config) ClientOptions() []slideshare.Option {
	opts := []slideshare.Option{
		slideshare.WithTimeout(c.SlideShare.Timeout),
		slideshare.WithDebug(c.SlideShare.Debug),
	}
	if c.SlideShare.BaseURL != "" {
		opts = append(opts, slideshare.WithBaseURL(c.SlideShare.BaseURL))
	}
	return opts
}

// Log returns the logger settings
func (l LoggingConfig) Log() log.Config {
	return log.Config{Level: l.Level, Format: l.Format, Color: l.Color}
}

// Addr is the listen address of the server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
