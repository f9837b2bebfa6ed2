package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"G935_CONFIG_PATH", "G935_MODE", "G935_INTERVAL_MS", "G935_SYSFS_ROOT", "G935_SWITCH_PROFILE", "LOG_LEVEL", "LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	if got, want := DefaultPath(), filepath.Join("/xdg", "g935-battery", "config.yaml"); got != want {
		t.Errorf("expected default path %q, got %q", want, got)
	}

	t.Setenv("G935_CONFIG_PATH", "/custom/path.yaml")
	if got := DefaultPath(); got != "/custom/path.yaml" {
		t.Errorf("expected env override '/custom/path.yaml', got %q", got)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	data := `
mode: sysfs
intervalMs: 1000
sysfsRoot: /tmp/sys
profileSwitch:
  enabled: true
  command: /usr/local/bin/switch-profile
  args: []
  card: my-card
  profile: my-profile
logging:
  level: debug
`
	if err := os.WriteFile(cfgPath, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Mode != ModeSysfs {
		t.Errorf("expected mode sysfs, got %q", cfg.Mode)
	}
	if cfg.IntervalMs != 1000 {
		t.Errorf("expected interval 1000, got %d", cfg.IntervalMs)
	}
	if cfg.SysfsRoot != "/tmp/sys" {
		t.Errorf("expected sysfs root /tmp/sys, got %q", cfg.SysfsRoot)
	}
	if !cfg.ProfileSwitch.Enabled {
		t.Error("expected profile switch enabled")
	}
	if cfg.ProfileSwitch.Command != "/usr/local/bin/switch-profile" {
		t.Errorf("unexpected command %q", cfg.ProfileSwitch.Command)
	}
	if len(cfg.ProfileSwitch.Args) != 0 {
		t.Errorf("expected no extra args, got %v", cfg.ProfileSwitch.Args)
	}
	if cfg.ProfileSwitch.Card != "my-card" || cfg.ProfileSwitch.Profile != "my-profile" {
		t.Errorf("unexpected card/profile %q/%q", cfg.ProfileSwitch.Card, cfg.ProfileSwitch.Profile)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %q", cfg.Logging.Level)
	}
	if cfg.ReadTimeoutMs != 5000 {
		t.Errorf("expected default read timeout 5000, got %d", cfg.ReadTimeoutMs)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("mode: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got %v", err)
	}
	if cfg.Mode != ModeAuto {
		t.Errorf("expected mode auto, got %q", cfg.Mode)
	}
	if cfg.IntervalMs != 500 {
		t.Errorf("expected interval 500, got %d", cfg.IntervalMs)
	}
	if cfg.SysfsRoot != "/sys" {
		t.Errorf("expected sysfs root /sys, got %q", cfg.SysfsRoot)
	}
	if cfg.ProfileSwitch.Enabled {
		t.Error("expected profile switch disabled by default")
	}
	if cfg.ProfileSwitch.Command != "pactl" {
		t.Errorf("expected pactl, got %q", cfg.ProfileSwitch.Command)
	}
	if len(cfg.ProfileSwitch.Args) != 1 || cfg.ProfileSwitch.Args[0] != "set-card-profile" {
		t.Errorf("expected [set-card-profile], got %v", cfg.ProfileSwitch.Args)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("G935_MODE", "HID")
	t.Setenv("G935_INTERVAL_MS", " 250 ")
	t.Setenv("G935_SYSFS_ROOT", "/fake/sys")
	t.Setenv("G935_SWITCH_PROFILE", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/g935.log")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Mode != ModeHID {
		t.Errorf("expected mode hid, got %q", cfg.Mode)
	}
	if cfg.IntervalMs != 250 {
		t.Errorf("expected interval 250, got %d", cfg.IntervalMs)
	}
	if cfg.SysfsRoot != "/fake/sys" {
		t.Errorf("expected sysfs root override, got %q", cfg.SysfsRoot)
	}
	if !cfg.ProfileSwitch.Enabled {
		t.Error("expected profile switch enabled from env")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.FilePath != "/tmp/g935.log" {
		t.Errorf("expected log file from env, got %q", cfg.Logging.FilePath)
	}
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("G935_INTERVAL_MS", "soon")
	t.Setenv("G935_SWITCH_PROFILE", "maybe")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.IntervalMs != 500 {
		t.Errorf("expected default interval, got %d", cfg.IntervalMs)
	}
	if cfg.ProfileSwitch.Enabled {
		t.Error("expected profile switch to stay disabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"auto", Config{Mode: ModeAuto}, false},
		{"hid", Config{Mode: ModeHID}, false},
		{"sysfs", Config{Mode: ModeSysfs}, false},
		{"bad mode", Config{Mode: "bluetooth"}, true},
		{"switch without command", Config{Mode: ModeAuto, ProfileSwitch: ProfileSwitchConfig{Enabled: true, Card: "c", Profile: "p"}}, true},
		{"switch without card", Config{Mode: ModeAuto, ProfileSwitch: ProfileSwitchConfig{Enabled: true, Command: "pactl", Profile: "p"}}, true},
		{"switch without profile", Config{Mode: ModeAuto, ProfileSwitch: ProfileSwitchConfig{Enabled: true, Command: "pactl", Card: "c"}}, true},
		{"switch complete", Config{Mode: ModeAuto, ProfileSwitch: ProfileSwitchConfig{Enabled: true, Command: "pactl", Card: "c", Profile: "p"}}, false},
		{"disabled switch ignores fields", Config{Mode: ModeAuto, ProfileSwitch: ProfileSwitchConfig{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidModeRejected(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("mode: bluetooth\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestApplyDefaults_RespectsExistingValues(t *testing.T) {
	clearEnv(t)
	cfg := Config{
		Mode:          " Sysfs ",
		IntervalMs:    2000,
		ReadTimeoutMs: 1000,
		SysfsRoot:     "/other",
		ProfileSwitch: ProfileSwitchConfig{Command: "switcher", Card: "card", Profile: "profile"},
		Logging:       LoggingConfig{FilePath: "/var/log/x.log", Level: "error"},
	}
	cfg.applyDefaults()

	if cfg.Mode != ModeSysfs {
		t.Errorf("expected normalized mode sysfs, got %q", cfg.Mode)
	}
	if cfg.IntervalMs != 2000 || cfg.ReadTimeoutMs != 1000 {
		t.Errorf("intervals overwritten: %d/%d", cfg.IntervalMs, cfg.ReadTimeoutMs)
	}
	if cfg.SysfsRoot != "/other" {
		t.Errorf("sysfs root overwritten: %q", cfg.SysfsRoot)
	}
	if cfg.ProfileSwitch.Args != nil {
		t.Errorf("expected no default args for a custom command, got %v", cfg.ProfileSwitch.Args)
	}
	if cfg.Logging.FilePath != "/var/log/x.log" || cfg.Logging.Level != "error" {
		t.Errorf("logging overwritten: %+v", cfg.Logging)
	}
}
