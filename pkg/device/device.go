// Package device locates the headset, either as an open HID handle or as
// the sysfs files the kernel exposes for it.
package device

import (
	"errors"
	"fmt"
)

// Model identifies a supported headset.
type Model struct {
	// Name matches the power_supply model_name the kernel reports.
	Name      string
	VendorID  uint16
	ProductID uint16
	// Interface is the "<config>.<interface>" suffix of the USB interface
	// carrying wireless_status.
	Interface string
}

// G935 is the Logitech G935 wireless headset.
var G935 = Model{
	Name:      "G935 Gaming Headset",
	VendorID:  0x046d,
	ProductID: 0x0a87,
	Interface: "1.3",
}

// ErrDeviceNotFound is returned when the headset is not attached (unplugged
// receiver, or the headset is asleep).
var ErrDeviceNotFound = errors.New("device not found")

// ErrReadTimeout is returned when the headset does not answer within the
// read timeout.
var ErrReadTimeout = errors.New("device read timed out")

// UnexpectedValueError reports a status file holding a value outside its
// known set, meaning a driver or firmware state we do not model.
type UnexpectedValueError struct {
	Field string
	Value string
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("unexpected %s value %q", e.Field, e.Value)
}
