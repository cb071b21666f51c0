package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alliedscientific/delivery-svc/internal/service/services/authsvc"
	"github.com/alliedscientific/delivery-svc/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	Login(ctx context.Context, email, password string, rememberMe bool) (*authsvc.Session, error)
}

type request struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type responseBody struct {
	Status string `json:"Status"`
	Data   int64  `json:"data"`
}

// Login handles the login request and sets the session cookie.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "bad_request", "invalid json body")
		slog.Error("Error decoding login request", "error", err)

		return
	}

	session, err := service.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, authsvc.ErrUserNotFound) || errors.Is(err, authsvc.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")

			return
		}
		response.Error(w, http.StatusInternalServerError, "query_error", "login failed")
		slog.Error("Error logging in", "error", err)

		return
	}

	// Cookie max-age mirrors the token expiry.
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.MaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusOK, responseBody{Status: "Success", Data: session.UserID})
}
