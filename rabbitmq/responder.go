package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/staffbridge/valimq"
)

// Responder is the validator worker: a long-running consumer that reads
// validation requests from the request queue, checks employee storage and
// publishes a correlated reply. It holds no state between messages.
type Responder struct {
	opts   valimq.Options
	exists valimq.ExistsFunc

	// Internal factory for testing.
	dial dialFunc
}

func NewResponder(exists valimq.ExistsFunc, opts ...valimq.Option) *Responder {
	return &Responder{
		opts:   valimq.NewOptions(opts...),
		exists: exists,
		dial:   defaultDial,
	}
}

// Run connects under the backoff policy and consumes until ctx is cancelled.
// A lost connection (the delivery channel closing) starts a fresh connect
// round; only connect exhaustion or cancellation ends the loop.
func (r *Responder) Run(ctx context.Context) error {
	connector := &Connector{opts: r.opts, dial: r.dial}

	for {
		conn, ch, err := connector.connect(ctx)
		if err != nil {
			return err
		}

		err = r.consume(ctx, ch)
		ch.Close()
		conn.Close()
		if err != nil {
			if ctx.Err() != nil {
				r.opts.Logger.Log("validator worker stopped")
				return nil
			}
			return err
		}
		r.opts.Logger.Log("broker connection lost, reconnecting")
	}
}

func (r *Responder) consume(ctx context.Context, ch brokerChannel) error {
	if err := ensureTopology(ch); err != nil {
		return err
	}

	if r.opts.Prefetch > 0 {
		if err := ch.Qos(r.opts.Prefetch, 0, false); err != nil {
			return err
		}
	}

	deliveries, err := ch.Consume(
		valimq.RequestQueue, // queue
		"",                  // consumer
		false,               // manual ack, one decision per message
		false,               // exclusive
		false,               // no-local
		false,               // no-wait
		nil,                 // args
	)
	if err != nil {
		return err
	}

	r.opts.Logger.Logf("validator worker consuming from %s", valimq.RequestQueue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			r.handle(ctx, ch, d)
		}
	}
}

// handle resolves exactly one delivery to an ack or a reject-without-requeue.
// Nothing a single message does may stop the consume loop.
func (r *Responder) handle(ctx context.Context, ch brokerChannel, d amqp.Delivery) {
	req, err := valimq.DecodeRequest(r.opts.Codec, d.Body)
	if err != nil {
		// The body will never parse on redelivery either.
		r.opts.Logger.Logf("rejecting request: %v", err)
		d.Nack(false, false)
		return
	}

	r.opts.Logger.Logf("validating employee %d", req.EmployeeID)
	reply := r.decide(ctx, req.EmployeeID)

	body, err := r.opts.Codec.Marshal(reply)
	if err != nil {
		r.opts.Logger.Logf("encoding reply failed: %v", err)
		d.Nack(false, false)
		return
	}

	// Reply to the private queue the requester named, or to the shared
	// response queue when the request carried no reply address.
	key := d.ReplyTo
	if key == "" {
		key = valimq.ResponseQueue
	}

	err = ch.PublishWithContext(ctx,
		"",    // exchange
		key,   // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: d.CorrelationId,
			DeliveryMode:  amqp.Persistent,
			Body:          body,
		})
	if err != nil {
		r.opts.Logger.Logf("publishing reply failed: %v", err)
		d.Nack(false, false)
		return
	}

	// Ack only after the reply is out, so a crash in between redelivers the
	// request instead of losing it.
	d.Ack(false)
}

func (r *Responder) decide(ctx context.Context, employeeID int64) *valimq.Reply {
	exists, err := r.exists(ctx, employeeID)
	if err != nil {
		// A storage failure is reported as invalid rather than crashing the
		// worker; the caller fails closed either way.
		r.opts.Logger.Logf("employee %d lookup failed: %v", employeeID, err)
		return &valimq.Reply{Valid: false, EmployeeID: &employeeID, Message: valimq.MsgInternalError}
	}
	if !exists {
		return &valimq.Reply{Valid: false, EmployeeID: &employeeID, Message: valimq.MsgNotFound}
	}
	return &valimq.Reply{Valid: true, EmployeeID: &employeeID, Message: valimq.MsgValid}
}
