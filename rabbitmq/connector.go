package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/staffbridge/valimq"
)

// Connector establishes broker connections under the configured backoff
// policy. The responder daemon uses it with generous retries because it is
// expected to outlive broker restarts; the requester never does, it dials
// once per call and fails fast.
type Connector struct {
	opts valimq.Options

	// Internal factory for testing.
	dial dialFunc
}

func NewConnector(opts ...valimq.Option) *Connector {
	return &Connector{
		opts: valimq.NewOptions(opts...),
		dial: defaultDial,
	}
}

// connect dials until a connection and channel are open or the backoff policy
// is exhausted. Each failed attempt is logged with its number. The returned
// error wraps valimq.ErrConnectExhausted so callers can choose to restart or
// run degraded instead of treating it as fatal.
func (c *Connector) connect(ctx context.Context) (brokerConn, brokerChannel, error) {
	if c.opts.Addr == "" {
		return nil, nil, fmt.Errorf("rabbitmq: broker address is required")
	}

	attempts := c.opts.Backoff.Attempts()
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := c.dial(c.opts.Addr, amqpConfig(c.opts))
		if err == nil {
			ch, chErr := conn.Channel()
			if chErr == nil {
				return conn, ch, nil
			}
			conn.Close()
			err = chErr
		}

		lastErr = err
		c.opts.Logger.Logf("broker connect attempt %d/%d failed: %v", attempt, attempts, err)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(c.opts.Backoff.Delay(attempt)):
		}
	}

	return nil, nil, fmt.Errorf("%w: %v", valimq.ErrConnectExhausted, lastErr)
}

// EnsureTopology declares both durable protocol queues. Declaring queues that
// already exist with identical parameters is a no-op; a conflicting existing
// declaration surfaces as a broker error rather than being ignored.
func (c *Connector) EnsureTopology(ctx context.Context) error {
	conn, ch, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer ch.Close()

	return ensureTopology(ch)
}

// ResetTopology deletes and recreates both protocol queues. This is a
// maintenance operation for recovering from a misconfigured deployment; it
// drops any queued messages and must never run on the request path.
func (c *Connector) ResetTopology(ctx context.Context) error {
	conn, ch, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer ch.Close()

	for _, q := range protocolQueues {
		if _, err := ch.QueueDelete(q, false, false, false); err != nil {
			return fmt.Errorf("delete queue %s: %w", q, err)
		}
		c.opts.Logger.Logf("deleted queue %s", q)
	}
	return ensureTopology(ch)
}
