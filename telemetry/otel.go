package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/milk9111/melee/telemetry"

// Meter returns the meter of the global provider, a no-op unless one has
// been installed.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
