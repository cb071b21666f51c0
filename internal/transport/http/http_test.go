package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alliedscientific/delivery-svc/internal/service/models/delivery"
	"github.com/alliedscientific/delivery-svc/internal/service/models/order"
	"github.com/alliedscientific/delivery-svc/internal/service/services/authsvc"
	"github.com/alliedscientific/delivery-svc/internal/service/services/deliverysvc"
	"github.com/alliedscientific/delivery-svc/internal/service/services/mailsvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	login func(ctx context.Context, email, password string, rememberMe bool) (*authsvc.Session, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*authsvc.Session, error) {
	return f.login(ctx, email, password, rememberMe)
}

type fakeDeliveryService struct {
	listPending    func(ctx context.Context, userID int64) ([]delivery.PendingDelivery, error)
	orderDetail    func(ctx context.Context, orderID int64) ([]order.DetailItem, error)
	complete       func(ctx context.Context, orderID int64, signature string) error
	completedWith  string
	completedOrder int64
}

func (f *fakeDeliveryService) ListPendingDeliveries(ctx context.Context, userID int64) ([]delivery.PendingDelivery, error) {
	return f.listPending(ctx, userID)
}

func (f *fakeDeliveryService) GetOrderDetail(ctx context.Context, orderID int64) ([]order.DetailItem, error) {
	return f.orderDetail(ctx, orderID)
}

func (f *fakeDeliveryService) CompleteDelivery(ctx context.Context, orderID int64, signature string) error {
	f.completedOrder = orderID
	f.completedWith = signature

	return f.complete(ctx, orderID, signature)
}

type fakeMailService struct {
	send func(ctx context.Context, orderID int64) error
}

func (f *fakeMailService) SendDeliveryConfirmation(ctx context.Context, orderID int64) error {
	return f.send(ctx, orderID)
}

func newTestTransport(auth authService, delivery deliveryService, mail mailService) *HTTPTransport {
	transport := NewHTTPTransport(auth, delivery, mail)
	transport.RegisterRoutes()

	return transport
}

func serve(t *testing.T, transport *HTTPTransport, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	transport.router.ServeHTTP(rec, req)

	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}

	return nil
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		session    *authsvc.Session
		loginErr   error
		wantStatus int
		wantMaxAge int
	}{
		{
			name:       "valid credentials set the session cookie",
			body:       `{"email":"asha@example.com","password":"securepass","rememberMe":false}`,
			session:    &authsvc.Session{Token: "signed-token", MaxAge: 5 * 24 * time.Hour, UserID: 7},
			wantStatus: http.StatusOK,
			wantMaxAge: int((5 * 24 * time.Hour).Seconds()),
		},
		{
			name:       "remember me extends the cookie",
			body:       `{"email":"asha@example.com","password":"securepass","rememberMe":true}`,
			session:    &authsvc.Session{Token: "signed-token", MaxAge: 30 * 24 * time.Hour, UserID: 7},
			wantStatus: http.StatusOK,
			wantMaxAge: int((30 * 24 * time.Hour).Seconds()),
		},
		{
			name:       "wrong password",
			body:       `{"email":"asha@example.com","password":"wrongpass","rememberMe":false}`,
			loginErr:   authsvc.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			body:       `{"email":"nobody@example.com","password":"securepass","rememberMe":false}`,
			loginErr:   authsvc.ErrUserNotFound,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{login: func(ctx context.Context, email, password string, rememberMe bool) (*authsvc.Session, error) {
				if tt.loginErr != nil {
					return nil, tt.loginErr
				}

				return tt.session, nil
			}}
			transport := newTestTransport(auth, &fakeDeliveryService{}, &fakeMailService{})

			rec := serve(t, transport, http.MethodPost, "/login", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			cookie := sessionCookie(t, rec)
			if tt.wantStatus != http.StatusOK {
				assert.Nil(t, cookie)

				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "unauthorized", body["code"])

				return
			}

			require.NotNil(t, cookie)
			assert.Equal(t, "signed-token", cookie.Value)
			assert.Equal(t, tt.wantMaxAge, cookie.MaxAge)
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

			var body struct {
				Status string `json:"Status"`
				Data   int64  `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Success", body.Status)
			assert.Equal(t, int64(7), body.Data)
		})
	}
}

func TestLoginHandlerMalformedBody(t *testing.T) {
	transport := newTestTransport(&fakeAuthService{}, &fakeDeliveryService{}, &fakeMailService{})

	rec := serve(t, transport, http.MethodPost, "/login", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	transport := newTestTransport(&fakeAuthService{}, &fakeDeliveryService{}, &fakeMailService{})

	rec := serve(t, transport, http.MethodGet, "/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.Empty(t, cookie.Value)
}

func TestListDeliveriesHandler(t *testing.T) {
	pending := []delivery.PendingDelivery{
		{OrderID: 42, OrderNumber: "ORD-42", CreditorName: "Acme Labs", CreditorCity: "Pune"},
		{OrderID: 43, OrderNumber: "ORD-43", CreditorName: "Globex", CreditorCity: "Mumbai"},
	}

	svc := &fakeDeliveryService{listPending: func(ctx context.Context, userID int64) ([]delivery.PendingDelivery, error) {
		require.Equal(t, int64(7), userID)

		return pending, nil
	}}
	transport := newTestTransport(&fakeAuthService{}, svc, &fakeMailService{})

	rec := serve(t, transport, http.MethodGet, "/orders/7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []delivery.PendingDelivery
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, pending, body)
}

func TestListDeliveriesHandlerEmpty(t *testing.T) {
	svc := &fakeDeliveryService{listPending: func(ctx context.Context, userID int64) ([]delivery.PendingDelivery, error) {
		return nil, nil
	}}
	transport := newTestTransport(&fakeAuthService{}, svc, &fakeMailService{})

	rec := serve(t, transport, http.MethodGet, "/orders/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListDeliveriesHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "query failure",
			target:     "/orders/7",
			svcErr:     errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "query_error",
		},
		{
			name:       "non-numeric user id",
			target:     "/orders/abc",
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeDeliveryService{listPending: func(ctx context.Context, userID int64) ([]delivery.PendingDelivery, error) {
				return nil, tt.svcErr
			}}
			transport := newTestTransport(&fakeAuthService{}, svc, &fakeMailService{})

			rec := serve(t, transport, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestOrderDetailHandler(t *testing.T) {
	items := []order.DetailItem{
		{OrderQuantity: 3, ProductID: 11, ProductName: "Widget A", HSNCode: "8479"},
	}

	tests := []struct {
		name       string
		svcItems   []order.DetailItem
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "order with items",
			svcItems:   items,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown order",
			svcErr:     deliverysvc.ErrOrderNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "query failure",
			svcErr:     errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "query_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeDeliveryService{orderDetail: func(ctx context.Context, orderID int64) ([]order.DetailItem, error) {
				require.Equal(t, int64(42), orderID)

				return tt.svcItems, tt.svcErr
			}}
			transport := newTestTransport(&fakeAuthService{}, svc, &fakeMailService{})

			rec := serve(t, transport, http.MethodGet, "/orderdetail/42", "")
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var body []order.DetailItem
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, items, body)

				return
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestCompleteDeliveryHandler(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "delivery completed",
			wantStatus: http.StatusOK,
		},
		{
			name:       "nothing pending",
			svcErr:     deliverysvc.ErrNoPendingDelivery,
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "transaction failure",
			svcErr:     deliverysvc.ErrTransactionFailed,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "transaction_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeDeliveryService{complete: func(ctx context.Context, orderID int64, signature string) error {
				return tt.svcErr
			}}
			transport := newTestTransport(&fakeAuthService{}, svc, &fakeMailService{})

			rec := serve(t, transport, http.MethodPut, "/orders/42", `{"signature":"signed-by-recipient"}`)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(42), svc.completedOrder)
				assert.Equal(t, "signed-by-recipient", svc.completedWith)

				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "Success", body["status"])
				assert.Equal(t, "Delivered the parcel", body["message"])

				return
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestSendEmailHandler(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "email sent",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown order",
			svcErr:     mailsvc.ErrOrderNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "transport failure",
			svcErr:     mailsvc.ErrSendFailed,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "mail_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mail := &fakeMailService{send: func(ctx context.Context, orderID int64) error {
				require.Equal(t, int64(42), orderID)

				return tt.svcErr
			}}
			transport := newTestTransport(&fakeAuthService{}, &fakeDeliveryService{}, mail)

			rec := serve(t, transport, http.MethodPost, "/send-email/42", "")
			require.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "Email sent successfully!", body["message"])

				return
			}
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}
