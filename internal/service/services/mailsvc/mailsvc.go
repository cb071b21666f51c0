package mailsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alliedscientific/delivery-svc/internal/dal/smtp"
	"github.com/alliedscientific/delivery-svc/internal/service/models/order"
	"github.com/spf13/viper"
)

const subject = "Your Delivered Products"

var (
	// ErrOrderNotFound means the confirmation join yielded no rows.
	ErrOrderNotFound = errors.New("order not found")
	// ErrSendFailed means the mail transport reported an error. The message
	// is not retried.
	ErrSendFailed = errors.New("failed to send confirmation email")
)

type orderRepository interface {
	DeliveredSnapshot(ctx context.Context, orderID int64) (*order.Confirmation, error)
}

type mailer interface {
	Send(ctx context.Context, msg smtp.Message) error
}

// MailService composes and sends delivery confirmation emails.
type MailService struct {
	orderRepo orderRepository
	mailer    mailer
	from      string
	cc        string
}

// option is a function that configures the MailService.
type option func(*MailService)

// MustNewMailService creates a new MailService. Sender identities come from
// the mail.from and mail.cc config keys.
func MustNewMailService(opts ...option) *MailService {
	s := &MailService{
		from: viper.GetString("mail.from"),
		cc:   viper.GetString("mail.cc"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil {
		panic("mailsvc: order repository is required")
	}
	if s.mailer == nil {
		panic("mailsvc: mailer is required")
	}

	return s
}

// WithOrderRepository sets the order repository for the MailService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo orderRepository) option {
	return func(s *MailService) {
		s.orderRepo = repo
	}
}

// WithMailer sets the mail transport for the MailService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailer(m mailer) option {
	return func(s *MailService) {
		s.mailer = m
	}
}

// WithAddresses overrides the from and cc identities.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAddresses(from, cc string) option {
	return func(s *MailService) {
		s.from = from
		s.cc = cc
	}
}

// SendDeliveryConfirmation emails the creditor an itemized list of the
// order's delivered products, cc'ing the internal address. One attempt.
func (s *MailService) SendDeliveryConfirmation(ctx context.Context, orderID int64) error {
	conf, err := s.orderRepo.DeliveredSnapshot(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order for confirmation: %w", err)
	}
	if conf == nil {
		return ErrOrderNotFound
	}

	msg := smtp.Message{
		From:    s.from,
		To:      conf.CreditorEmail,
		Cc:      s.cc,
		Subject: subject,
		Body:    confirmationBody(conf),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}

func confirmationBody(conf *order.Confirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order %s. Here is the list of delivered products:\n", conf.CreditorName)

	for i, item := range conf.Items {
		fmt.Fprintf(&b, "\nProduct %d:\n", i+1)
		fmt.Fprintf(&b, "- Order Quantity: %d\n", item.OrderQuantity)
		fmt.Fprintf(&b, "- Product ID: %d\n", item.ProductID)
		fmt.Fprintf(&b, "- Product Name: %s\n", item.ProductName)
		fmt.Fprintf(&b, "- HSN Code: %s\n", item.HSNCode)
		fmt.Fprintf(&b, "- Unit of Measure: %s\n", item.UnitOfMeasure)
		fmt.Fprintf(&b, "- Catalog Number: %s\n", item.CatalogNumber)
	}

	return b.String()
}
