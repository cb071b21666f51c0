package sendemail

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alliedscientific/delivery-svc/internal/service/services/mailsvc"
	"github.com/alliedscientific/delivery-svc/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	SendDeliveryConfirmation(ctx context.Context, orderID int64) error
}

type responseBody struct {
	Message string `json:"message"`
}

// SendEmail handles the delivery confirmation email request.
func SendEmail(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "bad_request", "invalid order id")

		return
	}

	if err := service.SendDeliveryConfirmation(r.Context(), orderID); err != nil {
		if errors.Is(err, mailsvc.ErrOrderNotFound) {
			response.Error(w, http.StatusNotFound, "not_found", "order not found")

			return
		}
		response.Error(w, http.StatusInternalServerError, "mail_failed", "could not send confirmation email")
		slog.Error("Error sending confirmation email", "order_id", orderID, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, responseBody{Message: "Email sent successfully!"})
}
