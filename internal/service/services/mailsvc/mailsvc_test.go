package mailsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/alliedscientific/delivery-svc/internal/dal/smtp"
	"github.com/alliedscientific/delivery-svc/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	snapshot func(ctx context.Context, orderID int64) (*order.Confirmation, error)
}

func (f *fakeOrderRepo) DeliveredSnapshot(ctx context.Context, orderID int64) (*order.Confirmation, error) {
	return f.snapshot(ctx, orderID)
}

type fakeMailer struct {
	sent []smtp.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg smtp.Message) error {
	f.sent = append(f.sent, msg)

	return f.err
}

func snapshotConfirmation() *order.Confirmation {
	return &order.Confirmation{
		OrderID:       42,
		CreditorName:  "Acme Labs",
		CreditorEmail: "purchasing@acmelabs.example",
		Items: []order.DetailItem{
			{OrderQuantity: 3, ProductID: 11, ProductName: "Widget A", HSNCode: "8479", UnitOfMeasure: "PCS", CatalogNumber: "CAT-11"},
			{OrderQuantity: 1, ProductID: 12, ProductName: "Widget B", HSNCode: "8480", UnitOfMeasure: "BOX", CatalogNumber: "CAT-12"},
		},
	}
}

func TestSendDeliveryConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	svc := MustNewMailService(
		WithOrderRepository(&fakeOrderRepo{snapshot: func(ctx context.Context, orderID int64) (*order.Confirmation, error) {
			return snapshotConfirmation(), nil
		}}),
		WithMailer(mailer),
		WithAddresses("dispatch@example.com", "office@example.com"),
	)

	require.NoError(t, svc.SendDeliveryConfirmation(context.Background(), 42))

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "dispatch@example.com", msg.From)
	assert.Equal(t, "purchasing@acmelabs.example", msg.To)
	assert.Equal(t, "office@example.com", msg.Cc)
	assert.Equal(t, "Your Delivered Products", msg.Subject)
	assert.Contains(t, msg.Body, "Acme Labs")
	assert.Contains(t, msg.Body, "Product 1:")
	assert.Contains(t, msg.Body, "Widget A")
	assert.Contains(t, msg.Body, "Product 2:")
	assert.Contains(t, msg.Body, "Widget B")
	assert.Contains(t, msg.Body, "Order Quantity: 3")
	assert.Contains(t, msg.Body, "Catalog Number: CAT-12")
}

func TestSendDeliveryConfirmationOrderNotFound(t *testing.T) {
	mailer := &fakeMailer{}
	svc := MustNewMailService(
		WithOrderRepository(&fakeOrderRepo{snapshot: func(ctx context.Context, orderID int64) (*order.Confirmation, error) {
			return nil, nil
		}}),
		WithMailer(mailer),
		WithAddresses("dispatch@example.com", "office@example.com"),
	)

	err := svc.SendDeliveryConfirmation(context.Background(), 42)
	require.ErrorIs(t, err, ErrOrderNotFound)
	assert.Empty(t, mailer.sent)
}

func TestSendDeliveryConfirmationQueryError(t *testing.T) {
	mailer := &fakeMailer{}
	svc := MustNewMailService(
		WithOrderRepository(&fakeOrderRepo{snapshot: func(ctx context.Context, orderID int64) (*order.Confirmation, error) {
			return nil, errors.New("connection reset")
		}}),
		WithMailer(mailer),
		WithAddresses("dispatch@example.com", "office@example.com"),
	)

	err := svc.SendDeliveryConfirmation(context.Background(), 42)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrSendFailed)
	assert.Empty(t, mailer.sent)
}

func TestSendDeliveryConfirmationTransportError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp timeout")}
	svc := MustNewMailService(
		WithOrderRepository(&fakeOrderRepo{snapshot: func(ctx context.Context, orderID int64) (*order.Confirmation, error) {
			return snapshotConfirmation(), nil
		}}),
		WithMailer(mailer),
		WithAddresses("dispatch@example.com", "office@example.com"),
	)

	err := svc.SendDeliveryConfirmation(context.Background(), 42)
	require.ErrorIs(t, err, ErrSendFailed)
	assert.Len(t, mailer.sent, 1)
}
