package rabbitmq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/staffbridge/valimq"
)

// Requester is the correlated RPC client. Every call opens its own
// connection, declares a private server-named reply queue, publishes one
// request tagged with a fresh correlation id and waits for the matching reply
// under a deadline. Nothing is shared between calls, so concurrent
// validations cannot observe each other's replies.
type Requester struct {
	opts valimq.Options

	// Internal factory for testing.
	dial dialFunc
}

var _ valimq.Validator = (*Requester)(nil)

func NewRequester(opts ...valimq.Option) *Requester {
	return &Requester{
		opts: valimq.NewOptions(opts...),
		dial: defaultDial,
	}
}

// Validate is the fail-closed form used inline on the attendance creation
// path. Whatever goes wrong underneath, the caller gets a plain boolean: an
// attendance record must never be created for an unvalidated employee just
// because the broker was briefly unreachable.
func (q *Requester) Validate(ctx context.Context, employeeID int64) bool {
	reply, err := q.ValidateReply(ctx, employeeID)
	if err != nil {
		q.opts.Logger.Logf("validation of employee %d failed closed: %v", employeeID, err)
		return false
	}
	return reply.Valid
}

// ValidateReply runs one request/reply round and surfaces the raw outcome.
// The error distinguishes transport failures and timeouts from a reply that
// definitively says no; Validate deliberately does not.
func (q *Requester) ValidateReply(ctx context.Context, employeeID int64) (*valimq.Reply, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.opts.Timeout)
		defer cancel()
	}

	// Single dial attempt: a broker outage should cost this call one fast
	// failure, not a retry loop inside an HTTP handler.
	conn, err := q.dial(q.opts.Addr, amqpConfig(q.opts))
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ensureTopology(ch); err != nil {
		return nil, err
	}

	// Private reply queue: server-named, exclusive to this connection and
	// auto-deleted with it.
	replyQueue, err := ch.QueueDeclare(
		"",    // name, assigned by the broker
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare reply queue: %w", err)
	}

	deliveries, err := ch.Consume(
		replyQueue.Name, // queue
		"",              // consumer
		true,            // auto-ack, replies are consumed at most once
		true,            // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume reply queue: %w", err)
	}

	correlationID := uuid.NewString()

	body, err := q.opts.Codec.Marshal(&valimq.Request{EmployeeID: employeeID})
	if err != nil {
		return nil, err
	}

	err = ch.PublishWithContext(ctx,
		"",                  // exchange
		valimq.RequestQueue, // routing key
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			ReplyTo:       replyQueue.Name,
			DeliveryMode:  amqp.Persistent,
			Body:          body,
		})
	if err != nil {
		return nil, fmt.Errorf("publish request: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", valimq.ErrTimeout, ctx.Err())
		case d, ok := <-deliveries:
			if !ok {
				return nil, valimq.ErrNotConnected
			}
			if d.CorrelationId != correlationID {
				// Stale or misrouted reply; keep waiting for ours.
				continue
			}
			return valimq.DecodeReply(q.opts.Codec, d.Body)
		}
	}
}
