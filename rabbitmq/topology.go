package rabbitmq

import (
	"fmt"

	"github.com/staffbridge/valimq"
)

var protocolQueues = []string{valimq.RequestQueue, valimq.ResponseQueue}

// ensureTopology declares the two durable queues of the wire contract. Both
// sides call it so whichever process starts first creates them; redeclaring
// with the same parameters is free.
func ensureTopology(ch brokerChannel) error {
	for _, q := range protocolQueues {
		if _, err := ch.QueueDeclare(
			q,     // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}
	return nil
}
