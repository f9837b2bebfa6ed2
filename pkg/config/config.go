package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Acquisition modes.
const (
	ModeAuto  = "auto"
	ModeHID   = "hid"
	ModeSysfs = "sysfs"
)

// Config captures all runtime knobs for the battery reporter.
type Config struct {
	// Mode selects how the headset is read: "hid" talks HID++ to the
	// receiver, "sysfs" reads the kernel driver's files, "auto" picks one
	// at startup.
	Mode          string              `yaml:"mode"`
	IntervalMs    int                 `yaml:"intervalMs"`
	ReadTimeoutMs int                 `yaml:"readTimeoutMs"`
	SysfsRoot     string              `yaml:"sysfsRoot"`
	ProfileSwitch ProfileSwitchConfig `yaml:"profileSwitch"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ProfileSwitchConfig controls the audio profile change run when the headset
// connects or disconnects.
type ProfileSwitchConfig struct {
	Enabled bool     `yaml:"enabled"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Card    string   `yaml:"card"`
	Profile string   `yaml:"profile"`
}

// LoggingConfig describes log destination and verbosity.
type LoggingConfig struct {
	FilePath string `yaml:"file"`
	Level    string `yaml:"level"`
}

// DefaultPath returns the config path honoring G935_CONFIG_PATH and
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if override := os.Getenv("G935_CONFIG_PATH"); override != "" {
		return override
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "config.yaml")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "g935-battery", "config.yaml")
}

// Load reads the config file, applies env overrides, defaults, and
// validation. A missing file is not an error: the tool runs on defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures the fields hold usable values.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAuto, ModeHID, ModeSysfs:
	default:
		return fmt.Errorf("mode must be one of %s, %s, %s; got %q", ModeAuto, ModeHID, ModeSysfs, c.Mode)
	}
	if c.ProfileSwitch.Enabled {
		switch {
		case strings.TrimSpace(c.ProfileSwitch.Command) == "":
			return errors.New("profileSwitch.command is required when enabled")
		case strings.TrimSpace(c.ProfileSwitch.Card) == "":
			return errors.New("profileSwitch.card is required when enabled")
		case strings.TrimSpace(c.ProfileSwitch.Profile) == "":
			return errors.New("profileSwitch.profile is required when enabled")
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = ModeAuto
	}
	if c.IntervalMs <= 0 {
		c.IntervalMs = 500
	}
	if c.ReadTimeoutMs <= 0 {
		c.ReadTimeoutMs = 5000
	}
	if c.SysfsRoot == "" {
		c.SysfsRoot = "/sys"
	}
	if c.ProfileSwitch.Command == "" {
		c.ProfileSwitch.Command = "pactl"
		if c.ProfileSwitch.Args == nil {
			c.ProfileSwitch.Args = []string{"set-card-profile"}
		}
	}
	if c.ProfileSwitch.Card == "" {
		c.ProfileSwitch.Card = "alsa_card.usb-Logitech_G935_Gaming_Headset-00"
	}
	if c.ProfileSwitch.Profile == "" {
		c.ProfileSwitch.Profile = "output:analog-stereo+input:mono-fallback"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = os.Getenv("LOG_FILE")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("G935_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("G935_INTERVAL_MS"); v != "" {
		if parsed, err := parseInt(v); err == nil {
			c.IntervalMs = parsed
		}
	}
	if v := os.Getenv("G935_SYSFS_ROOT"); v != "" {
		c.SysfsRoot = v
	}
	if v := os.Getenv("G935_SWITCH_PROFILE"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.ProfileSwitch.Enabled = b
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func parseInt(val string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(val))
}
