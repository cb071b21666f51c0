package delivery

// Status is the lifecycle state of a delivery.
type Status string

const (
	StatusRaised    Status = "raised"
	StatusDelivered Status = "delivered"
)

func (s Status) String() string {
	return string(s)
}

// PendingDelivery is one entry of a courier's pending-delivery list,
// denormalized with the creditor's contact details.
type PendingDelivery struct {
	OrderNumber      string `json:"orderNumber"`
	CreditorName     string `json:"creditorName"`
	CreditorAddress1 string `json:"creditorAddress1"`
	CreditorAddress2 string `json:"creditorAddress2"`
	CreditorAddress3 string `json:"creditorAddress3"`
	CreditorCity     string `json:"creditorCity"`
	CreditorState    string `json:"creditorState"`
	CreditorPincode  string `json:"creditorPincode"`
	CreditorPhone    string `json:"creditorPhone"`
	OrderID          int64  `json:"orderId"`
}
