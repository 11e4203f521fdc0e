package events

import "time"

const (
	OrderCreated   = "order.created"
	OrderPaid      = "order.paid"
	OrderDelivered = "order.delivered"

	producerName = "emedica-be"
	eventVersion = 1
)

// Queues lists every queue the publisher declares on start.
var Queues = []string{OrderCreated, OrderPaid, OrderDelivered}

// Envelope wraps every published payload.
type Envelope struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	OccurredAt    time.Time `json:"occurredAt"`
	Payload       any       `json:"payload"`
}
