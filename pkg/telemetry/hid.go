package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/austinkregel/g935-battery/pkg/battery"
	"github.com/austinkregel/g935-battery/pkg/device"
	"github.com/austinkregel/g935-battery/pkg/hidpp"
)

// DefaultReadTimeout bounds how long a HID read waits for the receiver.
const DefaultReadTimeout = 5 * time.Second

// HIDSource asks the receiver for the battery voltage over HID++.
type HIDSource struct {
	locator *device.HIDLocator
	model   device.Model
	timeout time.Duration
}

// NewHIDSource returns a source reading model through locator.
func NewHIDSource(locator *device.HIDLocator, model device.Model, timeout time.Duration) *HIDSource {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	return &HIDSource{locator: locator, model: model, timeout: timeout}
}

// Read opens the device, sends one battery request and decodes the answer.
// The receiver keeps answering while the headset is off; the voltage it
// reports then maps to a negative percentage, which is read as disconnected.
func (s *HIDSource) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}
	h, err := s.locator.Open(s.model)
	if err != nil {
		return Reading{}, err
	}
	defer h.Close()

	if _, err := h.Write(hidpp.BatteryVoltageRequest()); err != nil {
		return Reading{}, fmt.Errorf("write battery request: %w", err)
	}

	buf := make([]byte, hidpp.LongMessageLength)
	n, err := h.ReadWithTimeout(buf, s.timeout)
	switch {
	case errors.Is(err, device.ErrReadTimeout):
		return Reading{}, err
	case err != nil:
		return Reading{}, fmt.Errorf("read battery response: %w", err)
	case n == 0:
		return Reading{}, device.ErrReadTimeout
	}

	resp, err := hidpp.ParseBatteryResponse(buf[:n])
	if err != nil {
		return Reading{}, err
	}
	pct := battery.Estimate(resp.Voltage)
	if pct < 0 {
		return Reading{Connected: false}, nil
	}
	return Reading{
		Connected: true,
		Sample: &battery.Sample{
			Voltage:    uint(resp.Voltage),
			Percentage: pct,
			Charging:   resp.Charging(),
		},
	}, nil
}
