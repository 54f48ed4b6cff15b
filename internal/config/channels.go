package config

import (
	"fmt"
	"os"

	"github.com/lepinkainen/video-digest/configs"
	"github.com/lepinkainen/video-digest/pkg/urlutils"
	"gopkg.in/yaml.v3"
)

const defaultChannelsFile = "channels.yaml"

// Channel is a named public channel page polled on every run
type Channel struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type channelRegistry struct {
	Channels []Channel `yaml:"channels"`
}

// LoadChannels reads the channel registry. An empty path selects the list compiled into the binary.
// The returned slice keeps file order, which is also the processing order.
func LoadChannels(path string) ([]Channel, error) {
	var (
		data []byte
		err  error
	)

	if path == "" {
		data, err = configs.EmbeddedConfigs.ReadFile(defaultChannelsFile)
		if err != nil {
			return nil, fmt.Errorf("reading embedded channels: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading channels file %s: %w", path, err)
		}
	}

	return ParseChannels(data)
}

// ParseChannels decodes and validates a YAML channel registry
func ParseChannels(data []byte) ([]Channel, error) {
	var registry channelRegistry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("parsing channels: %w", err)
	}

	if err := validateChannels(registry.Channels); err != nil {
		return nil, err
	}

	return registry.Channels, nil
}

func validateChannels(channels []Channel) error {
	if len(channels) == 0 {
		return fmt.Errorf("no channels configured")
	}

	seen := make(map[string]bool, len(channels))
	for i, ch := range channels {
		if ch.Name == "" {
			return fmt.Errorf("channel %d: name is required", i)
		}
		if seen[ch.Name] {
			return fmt.Errorf("channel %q: duplicate name", ch.Name)
		}
		seen[ch.Name] = true

		if !urlutils.IsHTTPURL(ch.URL) {
			return fmt.Errorf("channel %q: url must be an absolute http(s) URL, got %q", ch.Name, ch.URL)
		}
	}

	return nil
}
