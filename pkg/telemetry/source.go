package telemetry

import (
	"context"

	"github.com/austinkregel/g935-battery/pkg/battery"
)

// Reading is the result of one acquisition.
type Reading struct {
	Connected bool
	// Sample is nil when the headset is disconnected or its battery data is
	// not available right now.
	Sample *battery.Sample
}

// Source performs one synchronous acquisition. Implementations re-locate the
// device on every call so a replugged receiver is picked up.
type Source interface {
	Read(ctx context.Context) (Reading, error)
}
