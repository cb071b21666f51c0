package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/alliedscientific/delivery-svc/internal/dal/postgres"
	"github.com/alliedscientific/delivery-svc/internal/service/models/order"
)

// DetailItemDal represents one row of the order-detail join.
type DetailItemDal struct {
	ItemQuantity  int    `db:"item_quantity"`
	ProductId     int64  `db:"product_id"`
	ProductName   string `db:"product_name"`
	ProductHsCode string `db:"product_hs_code"`
	ProductUom    string `db:"product_uom"`
	ProductCatNo  string `db:"product_cat_no"`
}

// ToModel converts DetailItemDal to the service layer DetailItem model.
func (d *DetailItemDal) ToModel() *order.DetailItem {
	return &order.DetailItem{
		OrderQuantity: d.ItemQuantity,
		ProductID:     d.ProductId,
		ProductName:   d.ProductName,
		HSNCode:       d.ProductHsCode,
		UnitOfMeasure: d.ProductUom,
		CatalogNumber: d.ProductCatNo,
	}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Detail retrieves the order's line items joined with their products, one
// entry per order-item/product pair.
func (r *PostgresOrderRepository) Detail(
	ctx context.Context,
	orderID int64,
) ([]order.DetailItem, error) {
	query, args, err := r.sb.
		Select(
			"oi.item_quantity",
			"p.id",
			"p.product_name",
			"p.product_hs_code",
			"p.product_uom",
			"p.product_cat_no",
		).
		From("orders o").
		Join("order_items oi ON oi.order_id = o.id").
		Join("products p ON p.id = oi.product_id").
		Where(sq.Eq{"o.id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order detail query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order detail: %w", err)
	}
	defer rows.Close()

	var result []order.DetailItem
	for rows.Next() {
		var dal DetailItemDal
		err := rows.Scan(
			&dal.ItemQuantity,
			&dal.ProductId,
			&dal.ProductName,
			&dal.ProductHsCode,
			&dal.ProductUom,
			&dal.ProductCatNo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order detail item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DeliveredSnapshot re-reads the order through the full creditor/delivery/
// item/product join for the confirmation email. Returns nil when the join
// yields no rows.
func (r *PostgresOrderRepository) DeliveredSnapshot(
	ctx context.Context,
	orderID int64,
) (*order.Confirmation, error) {
	query, args, err := r.sb.
		Select(
			"o.id",
			"c.creditor_name",
			"c.creditor_email",
			"oi.item_quantity",
			"p.id",
			"p.product_name",
			"p.product_hs_code",
			"p.product_uom",
			"p.product_cat_no",
		).
		From("orders o").
		Join("creditors c ON c.id = o.creditor_id").
		Join("deliveries d ON d.order_id = o.id").
		Join("order_items oi ON oi.order_id = o.id").
		Join("products p ON p.id = oi.product_id").
		Where(sq.Eq{"o.id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order snapshot query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order snapshot: %w", err)
	}
	defer rows.Close()

	var conf *order.Confirmation
	for rows.Next() {
		var dal DetailItemDal
		var id int64
		var creditorName, creditorEmail string
		err := rows.Scan(
			&id,
			&creditorName,
			&creditorEmail,
			&dal.ItemQuantity,
			&dal.ProductId,
			&dal.ProductName,
			&dal.ProductHsCode,
			&dal.ProductUom,
			&dal.ProductCatNo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order snapshot row: %w", err)
		}

		if conf == nil {
			conf = &order.Confirmation{
				OrderID:       id,
				CreditorName:  creditorName,
				CreditorEmail: creditorEmail,
			}
		}
		conf.Items = append(conf.Items, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return conf, nil
}

// Close sets the order to Closed and persists the recipient signature.
func (r *PostgresOrderRepository) Close(
	ctx context.Context,
	orderID int64,
	signature string,
) error {
	query, args, err := r.sb.
		Update("orders").
		Set("status", order.StatusClosed.String()).
		Set("recipient_signature", signature).
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order close query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to close order: %w", err)
	}

	return nil
}
