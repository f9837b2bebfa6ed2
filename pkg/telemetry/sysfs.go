package telemetry

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/austinkregel/g935-battery/pkg/battery"
	"github.com/austinkregel/g935-battery/pkg/device"
)

// Wireless link states written by the kernel to wireless_status.
const (
	wirelessConnected    = "connected"
	wirelessDisconnected = "disconnected"
)

// Battery states written by the hidpp driver to power_supply/*/status.
const (
	statusCharging    = "Charging"
	statusDischarging = "Discharging"
	statusFull        = "Full"
	statusUnknown     = "Unknown"
)

// SysfsSource reads the state the kernel driver exposes: wireless_status on
// the receiver's USB interface and a power_supply entry for the battery.
type SysfsSource struct {
	locator *device.SysfsLocator
	model   device.Model
}

// NewSysfsSource returns a source reading model through locator.
func NewSysfsSource(locator *device.SysfsLocator, model device.Model) *SysfsSource {
	return &SysfsSource{locator: locator, model: model}
}

// Read returns ErrDeviceNotFound when the receiver is absent. A connected
// headset without a usable power_supply entry yields a Reading without a
// Sample.
func (s *SysfsSource) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}
	fsys := s.locator.FS()

	wirelessPath, err := s.locator.WirelessStatusPath(s.model)
	if err != nil {
		return Reading{}, err
	}
	link, err := device.ReadTrimmed(fsys, wirelessPath)
	if err != nil {
		return Reading{}, fmt.Errorf("read wireless status: %w", err)
	}
	switch link {
	case wirelessConnected:
	case wirelessDisconnected:
		return Reading{Connected: false}, nil
	default:
		return Reading{}, &device.UnexpectedValueError{Field: "wireless_status", Value: link}
	}

	// The power_supply entry can lag the link state in either direction.
	dir, err := s.locator.PowerSupplyDir(s.model)
	if errors.Is(err, device.ErrDeviceNotFound) {
		return Reading{Connected: true}, nil
	}
	if err != nil {
		return Reading{}, err
	}

	sample, err := s.readPowerSupply(dir)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Connected: true, Sample: sample}, nil
}

func (s *SysfsSource) readPowerSupply(dir string) (*battery.Sample, error) {
	fsys := s.locator.FS()

	st, err := device.ReadTrimmed(fsys, path.Join(dir, "status"))
	if err != nil {
		return nil, fmt.Errorf("read battery status: %w", err)
	}
	var charging bool
	switch st {
	case statusCharging, statusFull:
		charging = true
	case statusDischarging:
	case statusUnknown:
		return nil, nil
	default:
		return nil, &device.UnexpectedValueError{Field: "status", Value: st}
	}

	// Capacity is already a percentage.
	capacity, err := device.ReadInt64(fsys, path.Join(dir, "capacity"))
	if err != nil {
		return nil, fmt.Errorf("read capacity: %w", err)
	}
	if capacity < 0 {
		capacity = 0
	}
	if capacity > 100 {
		capacity = 100
	}

	// Voltage (µV)
	voltageU, err := device.ReadInt64(fsys, path.Join(dir, "voltage_now"))
	if err != nil {
		return nil, fmt.Errorf("read voltage: %w", err)
	}
	if voltageU < 0 {
		voltageU = 0
	}

	return &battery.Sample{
		Voltage:    uint(voltageU / 1000),
		Percentage: float64(capacity),
		Charging:   charging,
	}, nil
}
