// Package status turns a headset reading into an i3status-rust custom block
// record.
package status

import (
	"encoding/json"
	"fmt"
	"io"
)

// Severity is the block state understood by i3status-rust.
type Severity string

const (
	Idle     Severity = "Idle"
	Critical Severity = "Critical"
	Warning  Severity = "Warning"
	Info     Severity = "Info"
	Good     Severity = "Good"
)

// Icon names.
const (
	IconHeadset         = "headset"
	IconHeadsetCharging = "headset_charging"
)

// DisconnectedText is shown while the headset is off or out of range.
const DisconnectedText = "Disconnected"

// Thresholds are product policy, not configuration.
const (
	fullPercent     = 99
	criticalPercent = 5
	warningPercent  = 15
)

// Record is one status block update.
type Record struct {
	State Severity `json:"state,omitempty"`
	Text  string   `json:"text"`
	Icon  string   `json:"icon,omitempty"`
}

// Empty is the record emitted when no data could be read, so the bar shows
// nothing instead of a stale value.
func Empty() Record {
	return Record{}
}

// Classify maps the headset state to a record. percentage is ignored when
// the headset is not connected.
func Classify(connected, charging bool, percentage float64) Record {
	if !connected {
		return Record{State: Idle, Text: DisconnectedText, Icon: IconHeadset}
	}

	rec := Record{
		Text: fmt.Sprintf("%.0f%%", percentage),
		Icon: IconHeadset,
	}
	switch {
	case charging && percentage >= fullPercent:
		rec.State = Good
	case charging:
		rec.State = Info
	case percentage <= criticalPercent:
		rec.State = Critical
	case percentage <= warningPercent:
		rec.State = Warning
	default:
		rec.State = Info
	}
	if charging {
		rec.Icon = IconHeadsetCharging
	}
	return rec
}

// Write encodes rec as a single JSON line.
func Write(w io.Writer, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
