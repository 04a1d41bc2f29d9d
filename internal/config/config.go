// Package config provides profile-based configuration management for cfmd.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultProfile is the profile used when none is named.
const DefaultProfile = "default"

// Profile holds the connection settings for one Confluence instance.
type Profile struct {
	BaseURL  string `yaml:"url"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// Validate checks that a profile has enough to authenticate: a URL plus
// either a token or a username/password pair.
func (p *Profile) Validate() error {
	if p.BaseURL == "" {
		return errors.New("url is required")
	}
	if !strings.HasPrefix(p.BaseURL, "http://") && !strings.HasPrefix(p.BaseURL, "https://") {
		return errors.New("url must start with http:// or https://")
	}
	if p.Token == "" && (p.Username == "" || p.Password == "") {
		return errors.New("either a token or a username and password is required")
	}
	return nil
}

// LoadFromEnv overrides profile fields from CFMD_* environment variables.
// Set variables win over file values; unset ones leave the file values alone.
func (p *Profile) LoadFromEnv() {
	if url := os.Getenv("CFMD_URL"); url != "" {
		p.BaseURL = url
	}
	if username := os.Getenv("CFMD_USERNAME"); username != "" {
		p.Username = username
	}
	if password := os.Getenv("CFMD_PASSWORD"); password != "" {
		p.Password = password
	}
	if token := os.Getenv("CFMD_TOKEN"); token != "" {
		p.Token = token
	}
}

// Config maps profile names to their connection settings.
type Config struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile returns the named profile. An empty name means DefaultProfile.
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	profile, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found; run 'cfmd init' to create it", name)
	}
	return profile, nil
}

// SetProfile adds or replaces the named profile.
func (c *Config) SetProfile(name string, profile Profile) {
	if name == "" {
		name = DefaultProfile
	}
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = profile
}

// DeleteProfile removes the named profile, reporting whether it existed.
func (c *Config) DeleteProfile(name string) bool {
	if name == "" {
		name = DefaultProfile
	}
	if _, ok := c.Profiles[name]; !ok {
		return false
	}
	delete(c.Profiles, name)
	return true
}

// ProfileNames returns the configured profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "cfmd", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".cfmd", "config.yml")
	}

	return filepath.Join(home, ".config", "cfmd", "config.yml")
}

// Save writes the configuration to the specified path. The file carries
// credentials, so both the directory and the file are user-only.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadProfile loads the named profile from the config file at path and
// applies CFMD_* environment overrides. A missing file is not an error as
// long as the environment supplies a complete profile.
func LoadProfile(path, name string) (Profile, error) {
	var profile Profile

	cfg, err := Load(path)
	if err == nil {
		profile, err = cfg.Profile(name)
		if err != nil && !envConfigured() {
			return Profile{}, err
		}
	} else if !errors.Is(err, os.ErrNotExist) && !envConfigured() {
		return Profile{}, err
	}

	profile.LoadFromEnv()
	if err := profile.Validate(); err != nil {
		return Profile{}, fmt.Errorf("no usable configuration: %w (run 'cfmd init' or set CFMD_URL and CFMD_TOKEN)", err)
	}
	return profile, nil
}

func envConfigured() bool {
	return os.Getenv("CFMD_URL") != ""
}
