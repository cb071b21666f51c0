package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alliedscientific/delivery-svc/internal/service/models/delivery"
	"github.com/alliedscientific/delivery-svc/internal/service/models/order"
	"github.com/alliedscientific/delivery-svc/internal/service/services/authsvc"
	completedelivery "github.com/alliedscientific/delivery-svc/internal/transport/http/complete_delivery"
	listdeliveries "github.com/alliedscientific/delivery-svc/internal/transport/http/list_deliveries"
	"github.com/alliedscientific/delivery-svc/internal/transport/http/login"
	orderdetail "github.com/alliedscientific/delivery-svc/internal/transport/http/order_detail"
	"github.com/alliedscientific/delivery-svc/internal/transport/http/response"
	sendemail "github.com/alliedscientific/delivery-svc/internal/transport/http/send_email"
	"github.com/alliedscientific/delivery-svc/pkg/http/middleware/trace"
	"github.com/alliedscientific/delivery-svc/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type authService interface {
	Login(ctx context.Context, email, password string, rememberMe bool) (*authsvc.Session, error)
}

type deliveryService interface {
	ListPendingDeliveries(ctx context.Context, userID int64) ([]delivery.PendingDelivery, error)
	GetOrderDetail(ctx context.Context, orderID int64) ([]order.DetailItem, error)
	CompleteDelivery(ctx context.Context, orderID int64, signature string) error
}

type mailService interface {
	SendDeliveryConfirmation(ctx context.Context, orderID int64) error
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	auth     authService
	delivery deliveryService
	mail     mailService
}

func NewHTTPTransport(auth authService, delivery deliveryService, mail mailService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		auth:     auth,
		delivery: delivery,
		mail:     mail,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Post("/login", h.login)
	h.router.Get("/logout", h.logout)
	h.router.Get("/orders/{userId}", h.listDeliveries)
	h.router.Get("/orderdetail/{id}", h.orderDetail)
	h.router.Put("/orders/{id}", h.completeDelivery)
	h.router.Post("/send-email/{id}", h.sendEmail)
}

func (h *HTTPTransport) login(w http.ResponseWriter, r *http.Request) {
	login.Login(w, r, h.auth)
}

func (h *HTTPTransport) listDeliveries(w http.ResponseWriter, r *http.Request) {
	listdeliveries.ListDeliveries(w, r, h.delivery)
}

func (h *HTTPTransport) orderDetail(w http.ResponseWriter, r *http.Request) {
	orderdetail.OrderDetail(w, r, h.delivery)
}

func (h *HTTPTransport) completeDelivery(w http.ResponseWriter, r *http.Request) {
	completedelivery.CompleteDelivery(w, r, h.delivery)
}

func (h *HTTPTransport) sendEmail(w http.ResponseWriter, r *http.Request) {
	sendemail.SendEmail(w, r, h.mail)
}

func (h *HTTPTransport) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusOK, map[string]string{"status": "Success"})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
