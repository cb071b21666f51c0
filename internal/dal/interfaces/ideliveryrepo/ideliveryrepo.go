package ideliveryrepo

import (
	"context"

	"github.com/alliedscientific/delivery-svc/internal/service/models/delivery"
)

type IDeliveryPostgresRepository interface {
	ListPending(ctx context.Context, userID int64) ([]delivery.PendingDelivery, error)
	// MarkDelivered flips raised deliveries of the order to delivered and
	// returns the number of rows updated.
	MarkDelivered(ctx context.Context, orderID int64) (int64, error)
}
