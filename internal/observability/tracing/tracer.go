// Package tracing integrates OpenTelemetry tracing into the HTTP stack.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("rsstok")

// GetTracer returns the application tracer for creating spans.
func GetTracer() trace.Tracer {
	return tracer
}
