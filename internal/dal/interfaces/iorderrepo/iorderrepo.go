package iorderrepo

import (
	"context"

	"github.com/alliedscientific/delivery-svc/internal/service/models/order"
)

type IOrderPostgresRepository interface {
	Detail(ctx context.Context, orderID int64) ([]order.DetailItem, error)
	// DeliveredSnapshot returns nil without an error when the order join
	// yields no rows.
	DeliveredSnapshot(ctx context.Context, orderID int64) (*order.Confirmation, error)
	Close(ctx context.Context, orderID int64, signature string) error
}
