package uow

import (
	"context"

	"github.com/alliedscientific/delivery-svc/internal/dal/interfaces/icompleteddeliveryrepo"
	"github.com/alliedscientific/delivery-svc/internal/dal/interfaces/ideliveryrepo"
	"github.com/alliedscientific/delivery-svc/internal/dal/interfaces/iorderrepo"
	"github.com/alliedscientific/delivery-svc/internal/dal/postgres"
	completedrepo "github.com/alliedscientific/delivery-svc/internal/dal/repositories/completeddelivery/postgres"
	deliveryrepo "github.com/alliedscientific/delivery-svc/internal/dal/repositories/delivery/postgres"
	orderrepo "github.com/alliedscientific/delivery-svc/internal/dal/repositories/order/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	deliveryRepo  ideliveryrepo.IDeliveryPostgresRepository
	orderRepo     iorderrepo.IOrderPostgresRepository
	completedRepo icompleteddeliveryrepo.ICompletedDeliveryPostgresRepository
}

func (u *unitOfWork) DeliveryRepository() ideliveryrepo.IDeliveryPostgresRepository {
	return u.deliveryRepo
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderPostgresRepository {
	return u.orderRepo
}

func (u *unitOfWork) CompletedDeliveryRepository() icompleteddeliveryrepo.ICompletedDeliveryPostgresRepository {
	return u.completedRepo
}

func NewUnitOfWork(db *postgres.Client) *unitOfWork {
	pool := db.Pool()

	return &unitOfWork{
		pool:          pool,
		deliveryRepo:  deliveryrepo.NewPostgresDeliveryRepository(pool),
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		completedRepo: completedrepo.NewPostgresCompletedDeliveryRepository(pool),
	}
}

// Begin starts a transaction and rebinds the repositories to it. The
// transaction holds a single pool connection until Commit or Rollback.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.deliveryRepo = deliveryrepo.NewPostgresDeliveryRepository(tx)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.completedRepo = completedrepo.NewPostgresCompletedDeliveryRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
