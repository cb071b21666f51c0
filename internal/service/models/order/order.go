package order

// Status is the lifecycle state of an order.
type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

func (s Status) String() string {
	return string(s)
}

// DetailItem is one order-item/product pair of an order.
type DetailItem struct {
	OrderQuantity int    `json:"orderQuantity"`
	ProductID     int64  `json:"productId"`
	ProductName   string `json:"productName"`
	HSNCode       string `json:"hsnCode"`
	UnitOfMeasure string `json:"unitOfMeasure"`
	CatalogNumber string `json:"catalogNumber"`
}

// Confirmation is the delivered-order snapshot the confirmation email is
// built from.
type Confirmation struct {
	OrderID       int64
	CreditorName  string
	CreditorEmail string
	Items         []DetailItem
}
