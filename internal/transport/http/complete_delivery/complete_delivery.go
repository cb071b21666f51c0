package completedelivery

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alliedscientific/delivery-svc/internal/service/services/deliverysvc"
	"github.com/alliedscientific/delivery-svc/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	CompleteDelivery(ctx context.Context, orderID int64, signature string) error
}

type request struct {
	Signature string `json:"signature"`
}

type responseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CompleteDelivery handles the delivery completion request.
func CompleteDelivery(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "bad_request", "invalid order id")

		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "bad_request", "invalid json body")
		slog.Error("Error decoding complete delivery request", "error", err)

		return
	}

	if err := service.CompleteDelivery(r.Context(), orderID, req.Signature); err != nil {
		if errors.Is(err, deliverysvc.ErrNoPendingDelivery) {
			response.Error(w, http.StatusNotFound, "not_found", "no pending delivery for order")

			return
		}
		response.Error(w, http.StatusInternalServerError, "transaction_failed", "could not complete delivery")
		slog.Error("Error completing delivery", "order_id", orderID, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, responseBody{Status: "Success", Message: "Delivered the parcel"})
}
