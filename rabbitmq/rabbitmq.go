// Package rabbitmq carries the employee-validation protocol over an AMQP
// 0-9-1 broker using the queue topology and message properties every deployed
// peer already agrees on.
package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/staffbridge/valimq"
)

// brokerConn and brokerChannel mirror the slice of the amqp091 API this
// package touches, so tests can stand in for a live broker.
type brokerConn interface {
	Channel() (brokerChannel, error)
	Close() error
	IsClosed() bool
}

type brokerChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueDelete(name string, ifUnused, ifEmpty, noWait bool) (int, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Close() error
}

type connWrapper struct{ *amqp.Connection }

func (w *connWrapper) Channel() (brokerChannel, error) {
	return w.Connection.Channel()
}

type dialFunc func(addr string, config amqp.Config) (brokerConn, error)

func defaultDial(addr string, config amqp.Config) (brokerConn, error) {
	conn, err := amqp.DialConfig(addr, config)
	if err != nil {
		return nil, err
	}
	return &connWrapper{conn}, nil
}

func amqpConfig(opts valimq.Options) amqp.Config {
	config := amqp.Config{
		TLSClientConfig: opts.TLSConfig,
	}
	if opts.ClientID != "" {
		config.Properties = amqp.Table{
			"connection_name": opts.ClientID,
		}
	}
	return config
}
