package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

type mockConn struct {
	channelFunc  func() (brokerChannel, error)
	closeFunc    func() error
	isClosedFunc func() bool
}

func (m *mockConn) Channel() (brokerChannel, error) {
	if m.channelFunc != nil {
		return m.channelFunc()
	}
	return nil, nil
}

func (m *mockConn) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockConn) IsClosed() bool {
	if m.isClosedFunc != nil {
		return m.isClosedFunc()
	}
	return false
}

type mockChannel struct {
	publishFunc      func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	consumeFunc      func(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	queueDeclareFunc func(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	queueDeleteFunc  func(name string, ifUnused, ifEmpty, noWait bool) (int, error)
	qosFunc          func(prefetchCount, prefetchSize int, global bool) error
	closeFunc        func() error

	deliveries chan amqp.Delivery
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, exchange, key, mandatory, immediate, msg)
	}
	return nil
}

func (m *mockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	if m.consumeFunc != nil {
		return m.consumeFunc(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	}
	return m.deliveries, nil
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if m.queueDeclareFunc != nil {
		return m.queueDeclareFunc(name, durable, autoDelete, exclusive, noWait, args)
	}
	if name == "" {
		name = "amq.gen-test-reply"
	}
	return amqp.Queue{Name: name}, nil
}

func (m *mockChannel) QueueDelete(name string, ifUnused, ifEmpty, noWait bool) (int, error) {
	if m.queueDeleteFunc != nil {
		return m.queueDeleteFunc(name, ifUnused, ifEmpty, noWait)
	}
	return 0, nil
}

func (m *mockChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	if m.qosFunc != nil {
		return m.qosFunc(prefetchCount, prefetchSize, global)
	}
	return nil
}

func (m *mockChannel) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

type mockAcknowledger struct {
	ackFunc    func(tag uint64, multiple bool) error
	nackFunc   func(tag uint64, multiple, requeue bool) error
	rejectFunc func(tag uint64, requeue bool) error
}

func (m *mockAcknowledger) Ack(tag uint64, multiple bool) error {
	return m.ackFunc(tag, multiple)
}

func (m *mockAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	return m.nackFunc(tag, multiple, requeue)
}

func (m *mockAcknowledger) Reject(tag uint64, requeue bool) error {
	return m.rejectFunc(tag, requeue)
}

func dialTo(conn *mockConn) dialFunc {
	return func(addr string, config amqp.Config) (brokerConn, error) {
		return conn, nil
	}
}
