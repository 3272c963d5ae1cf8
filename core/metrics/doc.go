// Package metrics exposes Prometheus collectors for reconciliation passes,
// draw lookups, provider requests and scheduler decisions.
//
// Collectors live on a private Registry so tests and embedded callers do not
// collide with the default registerer. The start command serves Handler()
// at /metrics.
package metrics
