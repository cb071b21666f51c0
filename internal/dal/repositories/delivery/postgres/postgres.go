package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/alliedscientific/delivery-svc/internal/dal/postgres"
	"github.com/alliedscientific/delivery-svc/internal/service/models/delivery"
)

// PendingDeliveryDal represents one row of the pending-delivery join.
type PendingDeliveryDal struct {
	OrderNumber      string `db:"order_number"`
	CreditorName     string `db:"creditor_name"`
	CreditorAddress1 string `db:"creditor_address_1"`
	CreditorAddress2 string `db:"creditor_address_2"`
	CreditorAddress3 string `db:"creditor_address_3"`
	CreditorCity     string `db:"creditor_city"`
	CreditorState    string `db:"creditor_state"`
	CreditorPincode  string `db:"creditor_pincode"`
	CreditorPhone    string `db:"creditor_number_1"`
	OrderId          int64  `db:"id"`
}

// ToModel converts PendingDeliveryDal to the service layer model.
func (d *PendingDeliveryDal) ToModel() *delivery.PendingDelivery {
	return &delivery.PendingDelivery{
		OrderNumber:      d.OrderNumber,
		CreditorName:     d.CreditorName,
		CreditorAddress1: d.CreditorAddress1,
		CreditorAddress2: d.CreditorAddress2,
		CreditorAddress3: d.CreditorAddress3,
		CreditorCity:     d.CreditorCity,
		CreditorState:    d.CreditorState,
		CreditorPincode:  d.CreditorPincode,
		CreditorPhone:    d.CreditorPhone,
		OrderID:          d.OrderId,
	}
}

// PostgresDeliveryRepository represents a Postgres delivery repository.
type PostgresDeliveryRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresDeliveryRepository creates a new Postgres delivery repository.
func NewPostgresDeliveryRepository(conn postgres.Querier) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListPending retrieves the distinct orders with a raised delivery assigned
// to the user. Result order is unspecified.
func (r *PostgresDeliveryRepository) ListPending(
	ctx context.Context,
	userID int64,
) ([]delivery.PendingDelivery, error) {
	query, args, err := r.sb.
		Select(
			"o.order_number",
			"c.creditor_name",
			"c.creditor_address_1",
			"c.creditor_address_2",
			"c.creditor_address_3",
			"c.creditor_city",
			"c.creditor_state",
			"c.creditor_pincode",
			"c.creditor_number_1",
			"o.id",
		).
		Distinct().
		From("deliveries d").
		Join("orders o ON o.id = d.order_id").
		Join("order_items oi ON oi.order_id = o.id").
		Join("creditors c ON c.id = o.creditor_id").
		Where(sq.Eq{
			"d.user_id":         userID,
			"d.delivery_status": delivery.StatusRaised.String(),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending deliveries query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending deliveries: %w", err)
	}
	defer rows.Close()

	var result []delivery.PendingDelivery
	for rows.Next() {
		var dal PendingDeliveryDal
		err := rows.Scan(
			&dal.OrderNumber,
			&dal.CreditorName,
			&dal.CreditorAddress1,
			&dal.CreditorAddress2,
			&dal.CreditorAddress3,
			&dal.CreditorCity,
			&dal.CreditorState,
			&dal.CreditorPincode,
			&dal.CreditorPhone,
			&dal.OrderId,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending delivery: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// MarkDelivered flips the order's raised deliveries to delivered. The status
// guard keeps a concurrent second completion from matching any rows.
func (r *PostgresDeliveryRepository) MarkDelivered(
	ctx context.Context,
	orderID int64,
) (int64, error) {
	query, args, err := r.sb.
		Update("deliveries").
		Set("delivery_status", delivery.StatusDelivered.String()).
		Where(sq.Eq{
			"order_id":        orderID,
			"delivery_status": delivery.StatusRaised.String(),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build mark delivered query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark deliveries delivered: %w", err)
	}

	return tag.RowsAffected(), nil
}
