package app

// Outcome is the explicit result of handling one broker delivery. The
// broker adapter maps it to the transport primitive: accepted and rejected
// deliveries are acknowledged, failed ones are negatively acknowledged so
// the broker redelivers per its own retry policy. The orchestration never
// implements its own retry loop.
type Outcome int

const (
	// OutcomeAccepted means the message was fully processed.
	OutcomeAccepted Outcome = iota
	// OutcomeRejected is a terminal, non-retryable rejection (malformed or
	// invalid input). The message is acknowledged and dropped.
	OutcomeRejected
	// OutcomeFailed means handling failed for a possibly transient reason
	// and the broker should redeliver the message.
	OutcomeFailed
)

// Ack reports whether the delivery should be acknowledged.
func (o Outcome) Ack() bool {
	return o != OutcomeFailed
}

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
