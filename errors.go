package valimq

import "errors"

var (
	// ErrNotConnected is returned when an operation requires a live broker
	// channel and none is available.
	ErrNotConnected = errors.New("valimq: not connected")

	// ErrConnectExhausted is returned after the connect backoff policy has
	// used up all of its attempts. The caller decides whether to restart or
	// run degraded; the library never panics over it.
	ErrConnectExhausted = errors.New("valimq: broker unreachable after all connect attempts")

	// ErrMalformedMessage marks a body that is not valid protocol JSON.
	// Such messages are rejected without requeue, they cannot self-correct.
	ErrMalformedMessage = errors.New("valimq: malformed message body")

	// ErrTimeout is returned when no correlated reply arrived within the
	// requester's deadline. The attendance path treats it as a definitive
	// negative, not as unknown.
	ErrTimeout = errors.New("valimq: no correlated reply within deadline")
)
