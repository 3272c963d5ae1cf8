// Package verification runs reconciliation passes on request and on schedule.
//
// Routes:
//
//	POST /verify             manual pass, 202 when queued behind a running one
//	POST /verify/foreground  automatic pass, 409 when a pass is running
//	GET  /verify/status      scheduler state and last report
//
// Newly merged outcomes are published to Kafka by KafkaNotifier when brokers
// are configured.
package verification
