// Package metrics declares the Prometheus collectors of the service and the
// handler that exposes them.
package metrics
