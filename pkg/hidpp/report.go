// Package hidpp encodes and decodes the Logitech HID++ reports used to query
// the headset battery.
package hidpp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Report layout constants. These are fixed by the device firmware and must
// not be configurable.
const (
	LongMessage       byte = 0x11
	LongMessageLength      = 20
	DeviceReceiver    byte = 0xff

	// Feature index and function of the battery voltage query.
	featureBatteryVoltage byte = 0x08
	functionGetVoltage    byte = 0x0a

	// StateCharging is the value of the state byte while on USB power.
	StateCharging byte = 0x03

	MinResponseLength = 7
)

// ErrShortResponse is returned when a response is too short to hold a
// voltage and state.
var ErrShortResponse = errors.New("hidpp: short response")

// BatteryVoltageRequest returns a fresh long report asking the receiver for
// the headset battery voltage.
func BatteryVoltageRequest() []byte {
	req := make([]byte, LongMessageLength)
	req[0] = LongMessage
	req[1] = DeviceReceiver
	req[2] = featureBatteryVoltage
	req[3] = functionGetVoltage
	return req
}

// BatteryResponse is the decoded answer to BatteryVoltageRequest.
type BatteryResponse struct {
	Voltage uint16
	State   byte
}

// Charging reports whether the headset is on USB power.
func (r BatteryResponse) Charging() bool {
	return r.State == StateCharging
}

// ParseBatteryResponse decodes bytes 4-5 (big-endian voltage) and byte 6
// (state) of a battery response.
func ParseBatteryResponse(b []byte) (BatteryResponse, error) {
	if len(b) < MinResponseLength {
		return BatteryResponse{}, fmt.Errorf("%w: got %d bytes, need %d", ErrShortResponse, len(b), MinResponseLength)
	}
	return BatteryResponse{
		Voltage: binary.BigEndian.Uint16(b[4:6]),
		State:   b[6],
	}, nil
}
