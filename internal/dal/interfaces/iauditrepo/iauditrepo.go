package iauditrepo

import (
	"context"

	"github.com/alliedscientific/delivery-svc/internal/service/models/completeddelivery"
)

type IAuditRepository interface {
	LogDeliveryCompleted(ctx context.Context, event completeddelivery.Event) error
}
