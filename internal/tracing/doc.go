// Package tracing provides OpenTelemetry tracing for field synchronization and
// workspace persistence. It builds the tracer provider from configuration and
// exports spans to a JSONL file, stdout or an OTLP collector.
package tracing
