package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alliedscientific/delivery-svc/internal/dal/postgres"
	"github.com/alliedscientific/delivery-svc/internal/dal/rabbitmq"
	"github.com/alliedscientific/delivery-svc/internal/dal/repositories/audit"
	orderrepo "github.com/alliedscientific/delivery-svc/internal/dal/repositories/order/postgres"
	userrepo "github.com/alliedscientific/delivery-svc/internal/dal/repositories/user/postgres"
	"github.com/alliedscientific/delivery-svc/internal/dal/smtp"
	"github.com/alliedscientific/delivery-svc/internal/otel"
	"github.com/alliedscientific/delivery-svc/internal/service/services/authsvc"
	"github.com/alliedscientific/delivery-svc/internal/service/services/deliverysvc"
	"github.com/alliedscientific/delivery-svc/internal/service/services/mailsvc"
	httptransport "github.com/alliedscientific/delivery-svc/internal/transport/http"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()

	var rabbitClient *rabbitmq.Client
	var deliverySvc *deliverysvc.DeliveryService
	if viper.GetBool("rabbitmq.enabled") {
		rabbitClient = rabbitmq.MustNewClient()
		deliverySvc = deliverysvc.MustNewDeliveryService(
			deliverysvc.WithPostgresClient(postgresClient),
			deliverysvc.WithAuditRepository(audit.NewAuditRabbitMQRepository(rabbitClient)),
		)
	} else {
		deliverySvc = deliverysvc.MustNewDeliveryService(
			deliverysvc.WithPostgresClient(postgresClient),
		)
	}

	authSvc := authsvc.MustNewAuthService(
		authsvc.WithUserRepository(userrepo.NewPostgresUserRepository(postgresClient.Pool())),
	)

	mailSvc := mailsvc.MustNewMailService(
		mailsvc.WithOrderRepository(orderrepo.NewPostgresOrderRepository(postgresClient.Pool())),
		mailsvc.WithMailer(smtp.MustNewClient()),
	)

	transport := httptransport.NewHTTPTransport(authSvc, deliverySvc, mailSvc)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		}
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
