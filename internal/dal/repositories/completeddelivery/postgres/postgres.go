package postgresrepo

import (
	"context"
	"fmt"

	"github.com/alliedscientific/delivery-svc/internal/dal/postgres"
)

// PostgresCompletedDeliveryRepository writes the append-only archive of
// completed deliveries.
type PostgresCompletedDeliveryRepository struct {
	conn postgres.Querier
}

// NewPostgresCompletedDeliveryRepository creates a new Postgres
// completed-delivery repository.
func NewPostgresCompletedDeliveryRepository(conn postgres.Querier) *PostgresCompletedDeliveryRepository {
	return &PostgresCompletedDeliveryRepository{
		conn: conn,
	}
}

// ArchiveForOrder denormalizes the creditor's name and phone into the
// archive row. The join only considers deliveries already in status
// delivered, so inside the completion transaction it picks up the rows the
// preceding status update flipped.
func (r *PostgresCompletedDeliveryRepository) ArchiveForOrder(
	ctx context.Context,
	orderID int64,
	signature string,
) error {
	sql := `
		INSERT INTO completed_deliveries (
			order_id,
			recipient_name,
			recipient_contact,
			recipient_signature,
			created_by,
			delivery_time
		)
		SELECT
			o.id,
			c.creditor_name,
			c.creditor_number_1,
			$2,
			o.created_by,
			now()
		FROM orders o
		JOIN creditors c ON c.id = o.creditor_id
		JOIN deliveries d ON d.order_id = o.id AND d.delivery_status = 'delivered'
		WHERE o.id = $1
	`

	if _, err := r.conn.Exec(ctx, sql, orderID, signature); err != nil {
		return fmt.Errorf("failed to archive completed delivery: %w", err)
	}

	return nil
}
