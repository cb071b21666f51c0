package orderdetail

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alliedscientific/delivery-svc/internal/service/models/order"
	"github.com/alliedscientific/delivery-svc/internal/service/services/deliverysvc"
	"github.com/alliedscientific/delivery-svc/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	GetOrderDetail(ctx context.Context, orderID int64) ([]order.DetailItem, error)
}

// OrderDetail handles the order line-item expansion. A missing order is a
// 404, distinct from any list shape.
func OrderDetail(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "bad_request", "invalid order id")

		return
	}

	items, err := service.GetOrderDetail(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, deliverysvc.ErrOrderNotFound) {
			response.Error(w, http.StatusNotFound, "not_found", "order not found")

			return
		}
		response.Error(w, http.StatusInternalServerError, "query_error", "failed to get order detail")
		slog.Error("Error getting order detail", "order_id", orderID, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, items)
}
