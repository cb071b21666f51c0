package listdeliveries

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alliedscientific/delivery-svc/internal/service/models/delivery"
	"github.com/alliedscientific/delivery-svc/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	ListPendingDeliveries(ctx context.Context, userID int64) ([]delivery.PendingDelivery, error)
}

// ListDeliveries handles the pending-deliveries listing for a courier.
func ListDeliveries(w http.ResponseWriter, r *http.Request, service service) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "bad_request", "invalid user id")

		return
	}

	deliveries, err := service.ListPendingDeliveries(r.Context(), userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "query_error", "failed to list pending deliveries")
		slog.Error("Error listing pending deliveries", "user_id", userID, "error", err)

		return
	}

	if deliveries == nil {
		deliveries = []delivery.PendingDelivery{}
	}

	response.JSON(w, http.StatusOK, deliveries)
}
