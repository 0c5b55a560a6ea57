package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// SetupPropagation registers the W3C trace-context and baggage propagators
// globally. No tracer provider is installed here; spans are not exported,
// but inbound trace context survives into request-scoped logs.
func SetupPropagation() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
