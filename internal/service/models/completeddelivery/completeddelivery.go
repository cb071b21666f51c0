package completeddelivery

import "time"

// CompletedDelivery is the append-only archive row written when a delivery
// is confirmed. Rows are never updated or deleted.
type CompletedDelivery struct {
	OrderID            int64     `json:"orderId"`
	RecipientName      string    `json:"recipientName"`
	RecipientContact   string    `json:"recipientContact"`
	RecipientSignature string    `json:"recipientSignature"`
	CreatedBy          int64     `json:"createdBy"`
	DeliveryTime       time.Time `json:"deliveryTime"`
}

// Event is published to the audit queue after a completion commits.
type Event struct {
	EventID     string    `json:"eventId"`
	OrderID     int64     `json:"orderId"`
	DeliveredAt time.Time `json:"deliveredAt"`
}
