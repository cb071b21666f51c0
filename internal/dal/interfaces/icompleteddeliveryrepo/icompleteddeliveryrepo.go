package icompleteddeliveryrepo

import "context"

type ICompletedDeliveryPostgresRepository interface {
	// ArchiveForOrder inserts the completed-delivery row for the order,
	// denormalizing creditor contact data. Only deliveries already in status
	// delivered contribute to the insert.
	ArchiveForOrder(ctx context.Context, orderID int64, signature string) error
}
