// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Disabled turns off the terminal or escalation wrapper when used as its value
const Disabled = "none"

// Config holds helstore configuration
type Config struct {
	Shell       string   `yaml:"shell"`        // Shell used to interpret command strings
	Terminal    string   `yaml:"terminal"`     // Terminal prefix for privileged commands ("" = detect)
	Escalate    string   `yaml:"escalate"`     // Privilege escalation command
	ConfirmFlag string   `yaml:"confirm_flag"` // Appended to privileged commands
	PausePrompt string   `yaml:"pause_prompt"` // Shown before the terminal waits for Enter
	Helper      string   `yaml:"helper"`       // Community helper binary ("" = detect)
	Exclusive   bool     `yaml:"exclusive"`    // Allow only one privileged operation at a time
	Debug       bool     `yaml:"debug"`
	Commands    Commands `yaml:"commands"`
}

// Commands holds the fixed command lines run by the engine.
// Empty entries are derived from the helper at startup.
type Commands struct {
	RepoList      string `yaml:"repo_list"`
	CommunityList string `yaml:"community_list"`
	Updates       string `yaml:"updates"`
	Sync          string `yaml:"sync"`
	Upgrade       string `yaml:"upgrade"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Shell:       "/bin/sh",
		Terminal:    "", // Auto-detect
		Escalate:    "sudo",
		ConfirmFlag: "--noconfirm",
		PausePrompt: "Press Enter to close...",
		Helper:      "", // Auto-detect
		Commands: Commands{
			RepoList: "pacman -Sl",
			Updates:  "pacman -Qu",
			Sync:     "pacman -Syy",
			Upgrade:  "pacman -Syu",
		},
	}
}

// DefaultConfigPath returns $HOME/.config/helstore/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "helstore", "config.yaml"), nil
}

// LoadConfig loads configuration from file.
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// HelperCommand returns the community helper binary, "yay" when unset
func (c *Config) HelperCommand() string {
	if c.Helper == "" {
		return "yay"
	}
	return c.Helper
}

// CommunityListCommand returns the configured community listing command,
// derived from the helper when unset
func (c *Config) CommunityListCommand() string {
	if c.Commands.CommunityList != "" {
		return c.Commands.CommunityList
	}
	return c.HelperCommand() + " -Sl"
}
