package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/austinkregel/g935-battery/pkg/config"
	"github.com/austinkregel/g935-battery/pkg/device"
	"github.com/austinkregel/g935-battery/pkg/logging"
	"github.com/austinkregel/g935-battery/pkg/profile"
	"github.com/austinkregel/g935-battery/pkg/status"
	"github.com/austinkregel/g935-battery/pkg/telemetry"
)

// Field selects what a one-shot query prints.
type Field int

const (
	FieldVoltage Field = iota
	FieldPercentage
)

// ErrDisconnected is returned by one-shot queries when the receiver is
// present but the headset is off or out of range.
var ErrDisconnected = errors.New("wireless connection disconnected")

// ErrNoBatteryData is returned by one-shot queries when the headset is
// connected but reports no usable battery state.
var ErrNoBatteryData = errors.New("battery data unavailable")

// App wires the configured acquisition source to the reporting front ends.
type App struct {
	cfg      *config.Config
	log      *logging.Logger
	mode     string
	source   telemetry.Source
	switcher profile.Switcher
	closer   func() error
}

// kernelVersion is an indirection to make mode selection testable.
var kernelVersion = host.KernelVersion

// New assembles the source and side effects from config.
func New(cfg *config.Config, log *logging.Logger) (*App, error) {
	mode := ResolveMode(cfg.Mode, log)

	a := &App{cfg: cfg, log: log, mode: mode}
	switch mode {
	case config.ModeHID:
		if err := device.InitHID(); err != nil {
			return nil, err
		}
		a.closer = device.ExitHID
		a.source = telemetry.NewHIDSource(
			device.NewHIDLocator(),
			device.G935,
			time.Duration(cfg.ReadTimeoutMs)*time.Millisecond,
		)
	case config.ModeSysfs:
		a.source = telemetry.NewSysfsSource(
			device.NewSysfsLocator(os.DirFS(cfg.SysfsRoot)),
			device.G935,
		)
	default:
		return nil, fmt.Errorf("unsupported mode %q", mode)
	}

	if cfg.ProfileSwitch.Enabled {
		a.switcher = profile.NewCommand(cfg.ProfileSwitch, log.With("component", "profile"))
	}
	log.Debug("acquisition source selected", "mode", mode, "profileSwitch", cfg.ProfileSwitch.Enabled)
	return a, nil
}

func newWithSource(cfg *config.Config, log *logging.Logger, src telemetry.Source, sw profile.Switcher) *App {
	return &App{cfg: cfg, log: log, mode: cfg.Mode, source: src, switcher: sw}
}

// Mode returns the acquisition mode in use.
func (a *App) Mode() string {
	return a.mode
}

// Close releases device library resources.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer()
	a.closer = nil
	return err
}

// Watch runs the polling reporter until ctx is cancelled.
func (a *App) Watch(ctx context.Context, w io.Writer) error {
	cfg := telemetry.ReporterConfig{
		Interval: time.Duration(a.cfg.IntervalMs) * time.Millisecond,
		Switcher: a.switcher,
		Card:     a.cfg.ProfileSwitch.Card,
		Profile:  a.cfg.ProfileSwitch.Profile,
	}
	r := telemetry.NewReporter(cfg, a.source, w, a.log.With("component", "reporter"))
	return r.Run(ctx)
}

// Status prints a single status record. Unlike a polling cycle, an
// acquisition failure prints nothing and is returned for Describe.
func (a *App) Status(ctx context.Context, w io.Writer) error {
	reading, err := a.source.Read(ctx)
	if err != nil {
		return err
	}
	return status.Write(w, telemetry.Classify(reading))
}

// Query performs one acquisition and prints field followed by the charging
// line. Nothing is printed on failure.
func (a *App) Query(ctx context.Context, field Field, w io.Writer) error {
	reading, err := a.source.Read(ctx)
	if err != nil {
		return err
	}
	if !reading.Connected {
		return ErrDisconnected
	}
	if reading.Sample == nil {
		return ErrNoBatteryData
	}

	s := reading.Sample
	var value string
	switch field {
	case FieldVoltage:
		value = strconv.FormatUint(uint64(s.Voltage), 10)
	case FieldPercentage:
		value = strconv.FormatFloat(s.Percentage, 'f', -1, 64)
	default:
		return fmt.Errorf("unknown field %d", field)
	}
	charging := 0
	if s.Charging {
		charging = 1
	}
	_, err = fmt.Fprintf(w, "%s\nCharging: %d\n", value, charging)
	return err
}

// Describe renders err as the message shown on stderr for one-shot queries.
func Describe(err error) string {
	var uv *device.UnexpectedValueError
	switch {
	case errors.Is(err, device.ErrDeviceNotFound):
		return "Could not find " + device.G935.Name
	case errors.Is(err, device.ErrReadTimeout):
		return "Device read timed out."
	case errors.Is(err, ErrDisconnected):
		return "Wireless connection disconnected."
	case errors.Is(err, ErrNoBatteryData):
		return "Battery data unavailable."
	case errors.As(err, &uv):
		return fmt.Sprintf("Unexpected %s from driver: %q", uv.Field, uv.Value)
	default:
		return err.Error()
	}
}

// ResolveMode turns "auto" into a concrete mode. Kernels from 6.4 expose the
// receiver's wireless_status attribute, which the sysfs source needs.
func ResolveMode(mode string, log *logging.Logger) string {
	if mode != config.ModeAuto {
		return mode
	}
	if runtime.GOOS != "linux" {
		return config.ModeHID
	}
	kv, err := kernelVersion()
	if err != nil {
		log.Debug("kernel version unavailable, using hid", "error", err)
		return config.ModeHID
	}
	if kernelAtLeast(kv, 6, 4) {
		return config.ModeSysfs
	}
	log.Debug("kernel lacks wireless_status, using hid", "kernel", kv)
	return config.ModeHID
}

// kernelAtLeast compares the leading "major.minor" of a release string such
// as "6.5.0-14-generic".
func kernelAtLeast(release string, major, minor int) bool {
	parts := strings.SplitN(release, ".", 3)
	if len(parts) < 2 {
		return false
	}
	maj, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minStr := parts[1]
	if i := strings.IndexFunc(minStr, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		minStr = minStr[:i]
	}
	mn, err := strconv.Atoi(minStr)
	if err != nil {
		return false
	}
	if maj != major {
		return maj > major
	}
	return mn >= minor
}
