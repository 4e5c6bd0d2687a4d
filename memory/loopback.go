// Package memory provides an in-process Validator that runs the responder's
// decision table without a broker. Service tests and broker-less development
// environments use it in place of the RabbitMQ requester.
package memory

import (
	"context"

	"github.com/staffbridge/valimq"
)

// Loopback round-trips a validation through the protocol codec in-process.
// Each call gets its own capacity-1 rendezvous channel, mirroring the private
// reply queue of the real transport, so concurrent calls stay isolated and a
// caller that times out simply abandons its reply.
type Loopback struct {
	opts   valimq.Options
	exists valimq.ExistsFunc
}

var _ valimq.Validator = (*Loopback)(nil)

func New(exists valimq.ExistsFunc, opts ...valimq.Option) *Loopback {
	return &Loopback{
		opts:   valimq.NewOptions(opts...),
		exists: exists,
	}
}

func (l *Loopback) Validate(ctx context.Context, employeeID int64) bool {
	reply, err := l.ValidateReply(ctx, employeeID)
	if err != nil {
		l.opts.Logger.Logf("validation of employee %d failed closed: %v", employeeID, err)
		return false
	}
	return reply.Valid
}

func (l *Loopback) ValidateReply(ctx context.Context, employeeID int64) (*valimq.Reply, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	body, err := l.opts.Codec.Marshal(&valimq.Request{EmployeeID: employeeID})
	if err != nil {
		return nil, err
	}

	replies := make(chan []byte, 1)
	go func() {
		req, err := valimq.DecodeRequest(l.opts.Codec, body)
		if err != nil {
			return
		}
		encoded, err := l.opts.Codec.Marshal(l.decide(ctx, req.EmployeeID))
		if err != nil {
			return
		}
		replies <- encoded
	}()

	select {
	case <-ctx.Done():
		return nil, valimq.ErrTimeout
	case encoded := <-replies:
		return valimq.DecodeReply(l.opts.Codec, encoded)
	}
}

func (l *Loopback) decide(ctx context.Context, employeeID int64) *valimq.Reply {
	exists, err := l.exists(ctx, employeeID)
	if err != nil {
		l.opts.Logger.Logf("employee %d lookup failed: %v", employeeID, err)
		return &valimq.Reply{Valid: false, EmployeeID: &employeeID, Message: valimq.MsgInternalError}
	}
	if !exists {
		return &valimq.Reply{Valid: false, EmployeeID: &employeeID, Message: valimq.MsgNotFound}
	}
	return &valimq.Reply{Valid: true, EmployeeID: &employeeID, Message: valimq.MsgValid}
}
