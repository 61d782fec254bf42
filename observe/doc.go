// Package observe provides telemetry for the authentication pipeline.
//
// It is a pure instrumentation layer: structured JSON logging with
// credential redaction, plus OpenTelemetry tracer and meter setup with
// pluggable exporters. Consumers wire the observer into the auth
// middleware; nothing here touches tokens or keys.
package observe
