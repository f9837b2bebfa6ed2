package device

import (
	"errors"
	"fmt"
	"time"

	"github.com/sstallion/go-hid"
)

// Handle is an open HID device. It is owned by a single acquisition and must
// be closed before the next one.
type Handle interface {
	Write(p []byte) (int, error)
	ReadWithTimeout(p []byte, timeout time.Duration) (int, error)
	Close() error
}

// HIDLocator opens the headset by vendor and product id.
type HIDLocator struct {
	open func(vid, pid uint16) (Handle, error)
}

// NewHIDLocator returns a locator backed by hidapi.
func NewHIDLocator() *HIDLocator {
	return &HIDLocator{open: openFirst}
}

// NewHIDLocatorFunc returns a locator using open to reach the device.
func NewHIDLocatorFunc(open func(vid, pid uint16) (Handle, error)) *HIDLocator {
	return &HIDLocator{open: open}
}

// Open returns a handle to the first attached device matching m.
func (l *HIDLocator) Open(m Model) (Handle, error) {
	h, err := l.open(m.VendorID, m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%04x:%04x): %v", ErrDeviceNotFound, m.Name, m.VendorID, m.ProductID, err)
	}
	return h, nil
}

// InitHID initializes hidapi. Call ExitHID once done with all handles.
func InitHID() error {
	if err := hid.Init(); err != nil {
		return fmt.Errorf("hid init: %w", err)
	}
	return nil
}

// ExitHID releases hidapi resources.
func ExitHID() error {
	return hid.Exit()
}

func openFirst(vid, pid uint16) (Handle, error) {
	dev, err := hid.OpenFirst(vid, pid)
	if err != nil {
		return nil, err
	}
	return &hidHandle{dev: dev}, nil
}

// hidHandle maps library timeouts onto ErrReadTimeout.
type hidHandle struct {
	dev *hid.Device
}

func (h *hidHandle) Write(p []byte) (int, error) {
	return h.dev.Write(p)
}

func (h *hidHandle) ReadWithTimeout(p []byte, timeout time.Duration) (int, error) {
	n, err := h.dev.ReadWithTimeout(p, timeout)
	if errors.Is(err, hid.ErrTimeout) {
		return n, ErrReadTimeout
	}
	return n, err
}

func (h *hidHandle) Close() error {
	return h.dev.Close()
}
