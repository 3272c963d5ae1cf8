// Package events publishes reconciliation events to Kafka.
//
// Messages are JSON encoded and keyed (bet ID for outcomes) so every event
// for a bet lands on the same partition. Publishing is disabled when no
// brokers are configured.
package events
