package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGroupsEnabledDefaults(t *testing.T) {
	var nilCfg *GroupsConfig
	if !nilCfg.Enabled("token") {
		t.Error("nil config must enable everything")
	}

	cfg := &GroupsConfig{Groups: map[string]*GroupSettings{
		"nft": {Enabled: false},
	}}
	if cfg.Enabled("nft") {
		t.Error("explicitly disabled group reported enabled")
	}
	if !cfg.Enabled("token") {
		t.Error("unmentioned group must be enabled")
	}
}

func TestLoadGroupsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.yaml")
	manifest := `groups:
  token:
    enabled: true
    description: token ops
  misc:
    enabled: false
`
	if err := os.WriteFile(path, []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGroupsConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Enabled("token") {
		t.Error("token should be enabled")
	}
	if cfg.Enabled("misc") {
		t.Error("misc should be disabled")
	}
	if cfg.Groups["token"].Description != "token ops" {
		t.Errorf("description = %q", cfg.Groups["token"].Description)
	}
}

func TestLoadGroupsConfigOrDefault(t *testing.T) {
	cfg := LoadGroupsConfigOrDefault("")
	for _, group := range []string{"token", "defi", "nft", "misc"} {
		if !cfg.Enabled(group) {
			t.Errorf("default config disables %s", group)
		}
	}

	// Missing file falls back to the default rather than failing startup.
	cfg = LoadGroupsConfigOrDefault("/nonexistent/groups.yaml")
	if !cfg.Enabled("token") {
		t.Error("fallback config disables token")
	}
}

func TestLoadGroupsConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.yaml")
	if err := os.WriteFile(path, []byte("groups: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGroupsConfig(path); err == nil {
		t.Fatal("malformed manifest accepted")
	}
}
