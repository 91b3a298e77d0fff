package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GroupSettings controls one action group.
type GroupSettings struct {
	Enabled     bool   `yaml:"enabled"`
	Description string `yaml:"description,omitempty"`
}

// GroupsConfig selects which action groups are registered at startup.
type GroupsConfig struct {
	Groups map[string]*GroupSettings `yaml:"groups"`
}

// Enabled reports whether the named group should be registered. Groups not
// mentioned in the manifest are enabled.
func (c *GroupsConfig) Enabled(name string) bool {
	if c == nil || c.Groups == nil {
		return true
	}
	settings, ok := c.Groups[name]
	if !ok {
		return true
	}
	return settings.Enabled
}

// LoadGroupsConfig reads an action-group manifest from path.
func LoadGroupsConfig(path string) (*GroupsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read groups manifest: %w", err)
	}
	var cfg GroupsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse groups manifest: %w", err)
	}
	return &cfg, nil
}

// LoadGroupsConfigOrDefault reads the manifest at path, or returns the
// default (everything enabled) when path is empty or missing.
func LoadGroupsConfigOrDefault(path string) *GroupsConfig {
	if path == "" {
		return DefaultGroupsConfig()
	}
	cfg, err := LoadGroupsConfig(path)
	if err != nil {
		return DefaultGroupsConfig()
	}
	return cfg
}

// DefaultGroupsConfig enables every action group.
func DefaultGroupsConfig() *GroupsConfig {
	return &GroupsConfig{
		Groups: map[string]*GroupSettings{
			"token": {Enabled: true, Description: "SOL and SPL token operations"},
			"defi":  {Enabled: true, Description: "DeFi market queries"},
			"nft":   {Enabled: true, Description: "Digital asset queries and minting"},
			"misc":  {Enabled: true, Description: "Market data, transaction utilities, domains"},
		},
	}
}
