// Package broker publishes domain events to RabbitMQ (amqp091-go) for the
// external subscriber pipeline.
//
// Messages are JSON, persistent, and routed through the default exchange to a
// durable queue named in the configuration. When the broker is disabled a Nop
// publisher is used instead.
package broker
