package smtp

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// Message is a single outbound plain-text mail.
type Message struct {
	From    string
	To      string
	Cc      string
	Subject string
	Body    string
}

// Client wraps the SMTP transport. One attempt per Send, no retries.
type Client struct {
	client *mail.Client
}

// MustNewClient creates a new SMTP client from the environment.
func MustNewClient() *Client {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		panic("invalid SMTP_PORT: " + err.Error())
	}

	client, err := mail.NewClient(
		os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(os.Getenv("SMTP_USER")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create SMTP client: %v", err))
	}

	return &Client{
		client: client,
	}
}

// Send dials the SMTP server and delivers the message.
func (c *Client) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	if msg.Cc != "" {
		if err := m.Cc(msg.Cc); err != nil {
			return fmt.Errorf("invalid cc address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	return c.client.DialAndSendWithContext(ctx, m)
}
