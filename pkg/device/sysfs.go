package device

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSysfsRoot is where sysfs is normally mounted.
const DefaultSysfsRoot = "/sys"

const (
	usbDevicesDir  = "bus/usb/devices"
	powerSupplyDir = "class/power_supply"
	wirelessStatus = "wireless_status"
	modelNameFile  = "model_name"
)

// USBAddress is the bus/port topology of an attached USB device.
type USBAddress struct {
	Bus   int
	Ports []int
}

// Name renders the kernel device name, e.g. "1-2.3".
func (a USBAddress) Name() string {
	ports := make([]string, len(a.Ports))
	for i, p := range a.Ports {
		ports[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("%d-%s", a.Bus, strings.Join(ports, "."))
}

// Interface renders the name of one of the device's interfaces, e.g.
// "1-2.3:1.3".
func (a USBAddress) Interface(suffix string) string {
	return a.Name() + ":" + suffix
}

// SysfsLocator finds the headset's kernel-exposed status files. Paths are
// relative to the sysfs root the locator was built with.
type SysfsLocator struct {
	fsys fs.FS
}

// NewSysfsLocator returns a locator reading from fsys, which must be rooted at
// the sysfs mount point.
func NewSysfsLocator(fsys fs.FS) *SysfsLocator {
	return &SysfsLocator{fsys: fsys}
}

// FS returns the filesystem the locator reads from.
func (l *SysfsLocator) FS() fs.FS {
	return l.fsys
}

// USBDevice returns the bus address of the first attached USB device matching
// m's vendor and product ids.
func (l *SysfsLocator) USBDevice(m Model) (USBAddress, error) {
	matches, err := l.glob(usbDevicesDir, "*")
	if err != nil {
		return USBAddress{}, fmt.Errorf("enumerate usb devices: %w", err)
	}
	for _, dir := range matches {
		// Interfaces ("1-2:1.0") carry no ids.
		if strings.Contains(path.Base(dir), ":") {
			continue
		}
		vid, err := readHex16(l.fsys, path.Join(dir, "idVendor"))
		if err != nil || vid != m.VendorID {
			continue
		}
		pid, err := readHex16(l.fsys, path.Join(dir, "idProduct"))
		if err != nil || pid != m.ProductID {
			continue
		}
		return readUSBAddress(l.fsys, dir)
	}
	return USBAddress{}, fmt.Errorf("%w: no usb device %04x:%04x", ErrDeviceNotFound, m.VendorID, m.ProductID)
}

// WirelessStatusPath returns the path of the wireless_status attribute on the
// headset's receiver interface.
func (l *SysfsLocator) WirelessStatusPath(m Model) (string, error) {
	addr, err := l.USBDevice(m)
	if err != nil {
		return "", err
	}
	p := path.Join(usbDevicesDir, addr.Interface(m.Interface), wirelessStatus)
	if _, err := fs.Stat(l.fsys, p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s missing", ErrDeviceNotFound, p)
		}
		return "", fmt.Errorf("stat %s: %w", p, err)
	}
	return p, nil
}

// PowerSupplyDir returns the power_supply directory whose model_name equals
// m.Name.
func (l *SysfsLocator) PowerSupplyDir(m Model) (string, error) {
	matches, err := l.glob(powerSupplyDir, "*")
	if err != nil {
		return "", fmt.Errorf("enumerate power supplies: %w", err)
	}
	for _, dir := range matches {
		name, err := ReadTrimmed(l.fsys, path.Join(dir, modelNameFile))
		if err != nil {
			continue
		}
		if name == m.Name {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: no power supply named %q", ErrDeviceNotFound, m.Name)
}

// glob lists entries under dir matching pattern. doublestar matches against
// the locator's fs.FS, so the tree is os.DirFS("/sys") or a test fixture.
func (l *SysfsLocator) glob(dir, pattern string) ([]string, error) {
	return doublestar.Glob(l.fsys, path.Join(dir, pattern))
}

// ReadTrimmed returns the whitespace-trimmed contents of p.
func ReadTrimmed(fsys fs.FS, p string) (string, error) {
	b, err := fs.ReadFile(fsys, p)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// ReadInt64 parses p as a decimal integer.
func ReadInt64(fsys fs.FS, p string) (int64, error) {
	s, err := ReadTrimmed(fsys, p)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, fmt.Errorf("%s: empty", p)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func readHex16(fsys fs.FS, p string) (uint16, error) {
	s, err := ReadTrimmed(fsys, p)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func readUSBAddress(fsys fs.FS, dir string) (USBAddress, error) {
	bus, err := ReadInt64(fsys, path.Join(dir, "busnum"))
	if err != nil {
		return USBAddress{}, fmt.Errorf("read busnum: %w", err)
	}
	devpath, err := ReadTrimmed(fsys, path.Join(dir, "devpath"))
	if err != nil {
		return USBAddress{}, fmt.Errorf("read devpath: %w", err)
	}
	addr := USBAddress{Bus: int(bus)}
	for _, part := range strings.Split(devpath, ".") {
		port, err := strconv.Atoi(part)
		if err != nil {
			return USBAddress{}, fmt.Errorf("parse devpath %q: %w", devpath, err)
		}
		addr.Ports = append(addr.Ports, port)
	}
	return addr, nil
}
