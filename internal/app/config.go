package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// Path is the file or URI to open.
	Path string
	// MIMEType is the explicit content-type hint; empty means the type
	// is detected from the file.
	MIMEType string

	// RegistryDir overrides the platform handler registry location.
	// Empty means the platform default.
	RegistryDir string

	LogLevel  string
	LogFormat string
}

// NewConfig validates cfg and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("Path is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
