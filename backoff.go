package valimq

import "time"

// Backoff decides how often and how long the connection manager retries a
// broker dial. It is injected as a strategy so tests can run zero-delay
// variants and the responder daemon can wait generously for the broker.
type Backoff interface {
	// Attempts is the total number of dials allowed, including the first.
	Attempts() int
	// Delay returns how long to sleep after the given failed attempt
	// (1-based) before the next one.
	Delay(attempt int) time.Duration
}

// FixedBackoff retries a fixed number of times with a constant interval,
// matching the historical connect loop of the validator worker.
type FixedBackoff struct {
	MaxAttempts int
	Interval    time.Duration
}

func (b FixedBackoff) Attempts() int { return b.MaxAttempts }

func (b FixedBackoff) Delay(int) time.Duration { return b.Interval }

// ExponentialBackoff doubles the interval after every failed attempt, capped
// at Max when Max is set.
type ExponentialBackoff struct {
	MaxAttempts int
	Initial     time.Duration
	Max         time.Duration
}

func (b ExponentialBackoff) Attempts() int { return b.MaxAttempts }

func (b ExponentialBackoff) Delay(attempt int) time.Duration {
	d := b.Initial
	for i := 1; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			return b.Max
		}
	}
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// SingleAttempt dials exactly once. The requester uses it so a broker outage
// fails a validation call fast instead of stalling the HTTP worker.
type SingleAttempt struct{}

func (SingleAttempt) Attempts() int { return 1 }

func (SingleAttempt) Delay(int) time.Duration { return 0 }
