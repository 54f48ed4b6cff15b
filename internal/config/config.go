package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/video-digest/pkg/filesystem"
	"github.com/spf13/viper"
)

// Environment variables read at startup
const (
	EnvAPIKey     = "DIFY_API_KEY"
	EnvWorkflowID = "DIFY_WORKFLOW_ID"
	EnvOutputDir  = "OUTPUT_DIR"
)

// Default service endpoints
const (
	DefaultAPIBaseURL  = "https://api.dify.ai/v1"
	DefaultFeedBaseURL = "https://www.youtube.com"
)

// Config holds the process-wide settings. It is built once at startup and passed to every component.
type Config struct {
	APIKey      string `mapstructure:"dify_api_key"`     // Bearer token for the workflow API
	WorkflowID  string `mapstructure:"dify_workflow_id"` // Embedded into the execute endpoint path
	OutputDir   string `mapstructure:"output_dir"`       // Destination of the Markdown reports
	APIBaseURL  string `mapstructure:"api_base_url"`     // Workflow API root, without trailing slash
	FeedBaseURL string `mapstructure:"feed_base_url"`    // Host serving /feeds/videos.xml
}

// ConfigurationError lists the required settings that are missing
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// LoadConfig reads configuration from the optional YAML file at path and the environment.
// Environment variables take precedence over file values. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("dify_api_key", "")
	v.SetDefault("dify_workflow_id", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("feed_base_url", DefaultFeedBaseURL)

	for key, env := range map[string]string{
		"dify_api_key":     EnvAPIKey,
		"dify_workflow_id": EnvWorkflowID,
		"output_dir":       EnvOutputDir,
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if path = resolvePath(path); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	config.APIBaseURL = strings.TrimRight(config.APIBaseURL, "/")
	config.FeedBaseURL = strings.TrimRight(config.FeedBaseURL, "/")

	return &config, nil
}

// Validate checks that every required value is present
func (c *Config) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.WorkflowID == "" {
		missing = append(missing, EnvWorkflowID)
	}
	if c.OutputDir == "" {
		missing = append(missing, EnvOutputDir)
	}

	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

// resolvePath finds a relative config file in the working directory first, then next to the executable.
// If neither exists the original path is returned so the caller sees a not-found error.
func resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	if _, err := os.Stat(path); err == nil {
		return path
	}

	if execPath, err := filesystem.GetDefaultPath(path); err == nil {
		if _, err := os.Stat(execPath); err == nil {
			return execPath
		}
	}

	return path
}
