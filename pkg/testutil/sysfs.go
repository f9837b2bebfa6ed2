package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// G935 identifiers as the kernel exposes them.
const (
	G935VendorID  = "046d"
	G935ProductID = "0a87"
	G935Name      = "G935 Gaming Headset"
)

// Sysfs builds a fake sysfs tree under a temp dir.
type Sysfs struct {
	t    testing.TB
	Root string
}

// NewSysfs creates an empty fake sysfs root.
func NewSysfs(t testing.TB) *Sysfs {
	t.Helper()
	return &Sysfs{t: t, Root: t.TempDir()}
}

// WriteFile writes content (plus a trailing newline, like sysfs) at rel.
func (s *Sysfs) WriteFile(rel, content string) {
	s.t.Helper()
	p := filepath.Join(s.Root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		s.t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content+"\n"), 0o644); err != nil {
		s.t.Fatalf("write %s: %v", p, err)
	}
}

// Remove deletes rel and everything under it.
func (s *Sysfs) Remove(rel string) {
	s.t.Helper()
	if err := os.RemoveAll(filepath.Join(s.Root, rel)); err != nil {
		s.t.Fatalf("remove %s: %v", rel, err)
	}
}

// USBDevice adds bus/usb/devices/<bus>-<devpath> with the given ids.
func (s *Sysfs) USBDevice(bus int, devpath, vid, pid string) string {
	s.t.Helper()
	dir := filepath.Join("bus/usb/devices", fmt.Sprintf("%d-%s", bus, devpath))
	s.WriteFile(filepath.Join(dir, "idVendor"), vid)
	s.WriteFile(filepath.Join(dir, "idProduct"), pid)
	s.WriteFile(filepath.Join(dir, "busnum"), fmt.Sprint(bus))
	s.WriteFile(filepath.Join(dir, "devpath"), devpath)
	return dir
}

// Headset adds the G935 receiver at <bus>-<devpath> with its wireless_status
// interface attribute set to wireless.
func (s *Sysfs) Headset(bus int, devpath, wireless string) {
	s.t.Helper()
	s.USBDevice(bus, devpath, G935VendorID, G935ProductID)
	s.SetWireless(bus, devpath, wireless)
}

// SetWireless rewrites the receiver's wireless_status attribute.
func (s *Sysfs) SetWireless(bus int, devpath, wireless string) {
	s.t.Helper()
	s.WriteFile(filepath.Join("bus/usb/devices", fmt.Sprintf("%d-%s:1.3", bus, devpath), "wireless_status"), wireless)
}

// PowerSupply adds class/power_supply/<name> with the given attributes.
func (s *Sysfs) PowerSupply(name, model, status string, capacity int, voltageMicroV int64) {
	s.t.Helper()
	dir := filepath.Join("class/power_supply", name)
	s.WriteFile(filepath.Join(dir, "model_name"), model)
	s.WriteFile(filepath.Join(dir, "status"), status)
	s.WriteFile(filepath.Join(dir, "capacity"), fmt.Sprint(capacity))
	s.WriteFile(filepath.Join(dir, "voltage_now"), fmt.Sprint(voltageMicroV))
}
