package battery

// Sample is one battery reading taken from the headset.
type Sample struct {
	// Voltage is the cell voltage in millivolts.
	Voltage    uint
	Percentage float64
	Charging   bool
}

// Curve coefficients fitted against the G935 cell discharge profile.
// f(x) = c4*x^4 + c3*x^3 + c2*x^2 + c1*x + c0
const (
	c4 = 3.7268473047e-9
	c3 = -5.605626214573775e-5
	c2 = 0.3156051902814949
	c1 = -788.0937250298629
	c0 = 736315.3077118985

	linearCeilingMV = 3525
	fullMV          = 4030
)

// Estimate converts a raw cell voltage (mV) into a charge percentage.
// Values at or below 3525 mV follow a linear segment that goes negative once
// the headset drops its wireless link, so callers on the HID path treat a
// negative result as "disconnected".
func Estimate(mv uint16) float64 {
	v := float64(mv)
	if mv <= linearCeilingMV {
		return 0.03*v - 101
	}
	if mv > fullMV {
		return 100
	}
	return c4*v*v*v*v + c3*v*v*v + c2*v*v + c1*v + c0
}
