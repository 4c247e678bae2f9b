package logger

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration.
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// fileConfig wraps Config for YAML parsing.
type fileConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FilePath:       "logs/pipegen.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig loads logging configuration from a YAML file, falling back to
// the defaults when path is empty or unreadable, then applies environment
// overrides: LOG_LEVEL, LOG_CONSOLE_FORMAT, LOG_FILE_ENABLED and
// LOG_FILE_PATH.
func LoadConfig(path string) Config {
	config := DefaultConfig()

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err == nil {
				config = applyFile(config, fc.Logging)
			}
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = level
	}
	if format := os.Getenv("LOG_CONSOLE_FORMAT"); format != "" {
		config.ConsoleFormat = format
	}
	if fileEnabled := os.Getenv("LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			config.FileEnabled = enabled
		}
	}
	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		config.FilePath = filePath
	}

	return config
}

func applyFile(config, file Config) Config {
	config.ConsoleEnabled = file.ConsoleEnabled
	config.FileEnabled = file.FileEnabled
	if file.Level != "" {
		config.Level = file.Level
	}
	if file.ConsoleFormat != "" {
		config.ConsoleFormat = file.ConsoleFormat
	}
	if file.FilePath != "" {
		config.FilePath = file.FilePath
	}
	if file.FileFormat != "" {
		config.FileFormat = file.FileFormat
	}
	if file.FileMaxSizeMB > 0 {
		config.FileMaxSizeMB = file.FileMaxSizeMB
	}
	if file.FileMaxBackups > 0 {
		config.FileMaxBackups = file.FileMaxBackups
	}
	if file.FileMaxAgeDays > 0 {
		config.FileMaxAgeDays = file.FileMaxAgeDays
	}
	return config
}
