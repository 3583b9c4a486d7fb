// Package feed delivers change notifications for conversations: one event
// per inserted message, so subscribers fetch and decrypt only the delta.
//
// Bus is the in-process implementation used by tests and single-process
// runs; the amqp subpackage carries the same contract over RabbitMQ.
package feed
