package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/austinkregel/g935-battery/pkg/config"
)

// TempConfig creates a temporary config file with the given config data.
// Returns the file path and a cleanup function.
func TempConfig(t interface{ Cleanup(func()) }, cfg *config.Config) (string, func()) {
	tmpdir := t.(interface{ TempDir() string }).TempDir()
	path := filepath.Join(tmpdir, "config.yaml")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		panic(err)
	}

	return path, func() {
		_ = os.Remove(path)
	}
}

// BuildConfig creates a sysfs-mode config rooted at sysfsRoot with sensible
// defaults for testing.
func BuildConfig(sysfsRoot string) *config.Config {
	return &config.Config{
		Mode:          config.ModeSysfs,
		IntervalMs:    10,
		ReadTimeoutMs: 100,
		SysfsRoot:     sysfsRoot,
		ProfileSwitch: config.ProfileSwitchConfig{
			Enabled: false,
			Command: "pactl",
			Args:    []string{"set-card-profile"},
			Card:    "test-card",
			Profile: "test-profile",
		},
		Logging: config.LoggingConfig{
			FilePath: "",
			Level:    "debug",
		},
	}
}

// SyncBuffer is a bytes.Buffer safe for concurrent writers, for capturing
// output from background goroutines.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
