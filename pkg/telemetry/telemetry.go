package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/austinkregel/g935-battery/pkg/logging"
	"github.com/austinkregel/g935-battery/pkg/profile"
	"github.com/austinkregel/g935-battery/pkg/status"
)

// DefaultInterval is the pause between polling cycles.
const DefaultInterval = 500 * time.Millisecond

// Transition is a change in connectivity between two cycles.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionConnected
	TransitionDisconnected
)

func (t Transition) String() string {
	switch t {
	case TransitionConnected:
		return "connected"
	case TransitionDisconnected:
		return "disconnected"
	default:
		return "none"
	}
}

// PollState is the connectivity seen on the previous successful cycle.
type PollState struct {
	LastConnected bool
}

// NewPollState assumes the headset is connected so that starting up with it
// present does not fire a profile switch.
func NewPollState() PollState {
	return PollState{LastConnected: true}
}

// Observe records connected and reports the edge, if any.
func (s *PollState) Observe(connected bool) Transition {
	prev := s.LastConnected
	s.LastConnected = connected
	switch {
	case !prev && connected:
		return TransitionConnected
	case prev && !connected:
		return TransitionDisconnected
	default:
		return TransitionNone
	}
}

// ReporterConfig configures a Reporter.
type ReporterConfig struct {
	Interval time.Duration
	// Switcher is nil when profile switching is disabled.
	Switcher profile.Switcher
	Card     string
	Profile  string
}

// Reporter polls a Source and writes one status record per cycle.
type Reporter struct {
	cfg ReporterConfig
	src Source
	out io.Writer
	log *logging.Logger
}

// NewReporter creates a reporter writing records to out.
func NewReporter(cfg ReporterConfig, src Source, out io.Writer, log *logging.Logger) *Reporter {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Reporter{cfg: cfg, src: src, out: out, log: log}
}

// Run blocks, emitting records until context cancellation.
func (r *Reporter) Run(ctx context.Context) error {
	state := NewPollState()
	r.log.Info("reporter loop starting", "interval", r.cfg.Interval.String(), "profileSwitch", r.cfg.Switcher != nil)

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("reporter loop exiting", "reason", ctx.Err())
			return ctx.Err()
		case <-timer.C:
			r.Cycle(ctx, &state)
			timer.Reset(r.cfg.Interval)
		}
	}
}

// Cycle performs one acquisition, writes its record and applies the profile
// switch on a connectivity edge. Failed acquisitions produce an empty record
// and leave state untouched.
func (r *Reporter) Cycle(ctx context.Context, state *PollState) status.Record {
	reading, err := r.src.Read(ctx)
	if err != nil {
		r.log.Debug("acquisition failed", "error", err)
		r.emit(status.Empty())
		return status.Empty()
	}

	rec := Classify(reading)
	r.emit(rec)

	if r.cfg.Switcher == nil {
		return rec
	}
	switch state.Observe(reading.Connected) {
	case TransitionConnected:
		r.switchProfile(ctx, r.cfg.Profile)
	case TransitionDisconnected:
		r.switchProfile(ctx, profile.Off)
	}
	return rec
}

// Classify turns a reading into a status record. A connected headset
// without battery data yields the empty record rather than a made-up
// percentage.
func Classify(reading Reading) status.Record {
	if !reading.Connected {
		return status.Classify(false, false, 0)
	}
	if reading.Sample == nil {
		return status.Empty()
	}
	return status.Classify(true, reading.Sample.Charging, reading.Sample.Percentage)
}

func (r *Reporter) emit(rec status.Record) {
	if err := status.Write(r.out, rec); err != nil {
		r.log.Error("failed to write status record", "error", err)
	}
}

func (r *Reporter) switchProfile(ctx context.Context, name string) {
	r.log.Info("switching audio profile", "card", r.cfg.Card, "profile", name)
	if err := r.cfg.Switcher.Switch(ctx, r.cfg.Card, name); err != nil {
		r.log.Warn("profile switch failed", "card", r.cfg.Card, "profile", name, "error", err)
	}
}
