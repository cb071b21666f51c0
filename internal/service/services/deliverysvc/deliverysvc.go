package deliverysvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alliedscientific/delivery-svc/internal/dal/interfaces/icompleteddeliveryrepo"
	"github.com/alliedscientific/delivery-svc/internal/dal/interfaces/ideliveryrepo"
	"github.com/alliedscientific/delivery-svc/internal/dal/interfaces/iorderrepo"
	"github.com/alliedscientific/delivery-svc/internal/dal/postgres"
	"github.com/alliedscientific/delivery-svc/internal/dal/uow"
	"github.com/alliedscientific/delivery-svc/internal/service/models/completeddelivery"
	"github.com/alliedscientific/delivery-svc/internal/service/models/delivery"
	"github.com/alliedscientific/delivery-svc/internal/service/models/order"
	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound means the order detail join yielded no rows.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoPendingDelivery means the order has no delivery left in status
	// raised, either because it never existed or was already completed.
	ErrNoPendingDelivery = errors.New("no pending delivery for order")
	// ErrTransactionFailed means a step of the completion transaction
	// failed; all writes were rolled back.
	ErrTransactionFailed = errors.New("delivery completion transaction failed")
)

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	DeliveryRepository() ideliveryrepo.IDeliveryPostgresRepository
	OrderRepository() iorderrepo.IOrderPostgresRepository
	CompletedDeliveryRepository() icompleteddeliveryrepo.ICompletedDeliveryPostgresRepository
}

type auditRepository interface {
	LogDeliveryCompleted(ctx context.Context, event completeddelivery.Event) error
}

// DeliveryService serves the pending-delivery queries and the completion
// workflow.
type DeliveryService struct {
	pgClient  *postgres.Client
	auditRepo auditRepository
	newUOW    func() unitOfWork
}

// option is a function that configures the DeliveryService.
type option func(*DeliveryService)

// MustNewDeliveryService creates a new DeliveryService.
func MustNewDeliveryService(opts ...option) *DeliveryService {
	s := &DeliveryService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("deliverysvc: postgres client is required")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the DeliveryService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *DeliveryService) {
		s.pgClient = pgClient
	}
}

// WithAuditRepository sets the audit event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(repo auditRepository) option {
	return func(s *DeliveryService) {
		s.auditRepo = repo
	}
}

// ListPendingDeliveries lists the courier's orders with a delivery still in
// status raised. Result order is unspecified.
func (s *DeliveryService) ListPendingDeliveries(
	ctx context.Context,
	userID int64,
) ([]delivery.PendingDelivery, error) {
	work := s.newUOW()

	deliveries, err := work.DeliveryRepository().ListPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deliveries: %w", err)
	}

	return deliveries, nil
}

// GetOrderDetail expands one order into its line items. An order the join
// cannot see yields ErrOrderNotFound, never an empty list.
func (s *DeliveryService) GetOrderDetail(
	ctx context.Context,
	orderID int64,
) ([]order.DetailItem, error) {
	work := s.newUOW()

	items, err := work.OrderRepository().Detail(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order detail: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrOrderNotFound
	}

	return items, nil
}

// CompleteDelivery marks the order delivered, archives the completed
// delivery and closes the order in one transaction. Any failure rolls all
// three writes back. The connection is released exactly once on every path.
func (s *DeliveryService) CompleteDelivery(
	ctx context.Context,
	orderID int64,
	signature string,
) error {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to roll back delivery completion", "order_id", orderID, "error", err)
		}
	}()

	updated, err := work.DeliveryRepository().MarkDelivered(ctx, orderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	if updated == 0 {
		return ErrNoPendingDelivery
	}

	if err := work.CompletedDeliveryRepository().ArchiveForOrder(ctx, orderID, signature); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	if err := work.OrderRepository().Close(ctx, orderID, signature); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	committed = true

	if s.auditRepo != nil {
		event := completeddelivery.Event{
			EventID:     uuid.NewString(),
			OrderID:     orderID,
			DeliveredAt: time.Now(),
		}
		if err := s.auditRepo.LogDeliveryCompleted(ctx, event); err != nil {
			slog.Warn("Failed to publish delivery completed event", "order_id", orderID, "error", err)
		}
	}

	return nil
}
