package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/riubs/rental-service/internal/errs"
	service_mocks "github.com/riubs/rental-service/internal/handler/mocks"
	"github.com/riubs/rental-service/internal/model"
	"github.com/riubs/rental-service/pkg/authgw"
)

var (
	demoUser  = authgw.User{ID: 3, Name: "Demo User", Email: "demo@library.local", Role: "user", Budget: 500}
	adminUser = authgw.User{ID: 1, Name: "Admin", Email: "admin@library.local", Role: authgw.RoleAdmin, Budget: 10000}
)

func serve(t *testing.T, method, target, body string, setup func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway)) *httptest.ResponseRecorder {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := service_mocks.NewMockRentalService(ctrl)
	auth := service_mocks.NewMockAuthGateway(ctrl)
	if setup != nil {
		setup(svc, auth)
	}

	h := New(svc, auth, zap.NewNop())
	e := h.NewRouter()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echoHeaderContentType, echoMIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const (
	echoHeaderContentType   = "Content-Type"
	echoMIMEApplicationJSON = "application/json"
)

func asUser(u authgw.User) func(auth *service_mocks.MockAuthGateway) {
	return func(auth *service_mocks.MockAuthGateway) {
		auth.EXPECT().Validate(gomock.Any(), "Bearer token", gomock.Any()).Return(u, true)
	}
}

func TestHandler_Rent(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway)
		wantCode int
		wantBody string
	}{
		{
			name: "ok",
			body: `{"bookId":7}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(demoUser)(auth)
				svc.EXPECT().Rent(gomock.Any(), 3, 7).
					Return(model.RentResponse{Message: "rented", Budget: 350}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `{"message":"rented","budget":350}`,
		},
		{
			name: "out of stock",
			body: `{"bookId":7}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(demoUser)(auth)
				svc.EXPECT().Rent(gomock.Any(), 3, 7).
					Return(model.RentResponse{}, errs.ErrOutOfStock)
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"out_of_stock"}`,
		},
		{
			name: "insufficient budget",
			body: `{"bookId":7}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(demoUser)(auth)
				svc.EXPECT().Rent(gomock.Any(), 3, 7).
					Return(model.RentResponse{}, errs.ErrInsufficientBudget)
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"insufficient_budget"}`,
		},
		{
			name: "unknown book",
			body: `{"bookId":999}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(demoUser)(auth)
				svc.EXPECT().Rent(gomock.Any(), 3, 999).
					Return(model.RentResponse{}, errs.ErrBookNotFound)
			},
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"book_not_found"}`,
		},
		{
			name:     "missing bookId",
			body:     `{}`,
			setup:    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(demoUser)(auth) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"missing_fields"}`,
		},
		{
			name: "unauthenticated",
			body: `{"bookId":7}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				auth.EXPECT().Validate(gomock.Any(), gomock.Any(), gomock.Any()).Return(authgw.User{}, false)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":"unauthorized"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/api/v1/rentals", tt.body, tt.setup)
			require.Equal(t, tt.wantCode, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_Return(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway)
		wantCode int
		wantBody string
	}{
		{
			name: "ok",
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(demoUser)(auth)
				svc.EXPECT().Return(gomock.Any(), 3, "uid-1").Return(nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"message":"returned"}`,
		},
		{
			name: "already returned",
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(demoUser)(auth)
				svc.EXPECT().Return(gomock.Any(), 3, "uid-1").Return(errs.ErrRentalNotFound)
			},
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"rental_not_found"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/api/v1/rentals/uid-1/return", "", tt.setup)
			require.Equal(t, tt.wantCode, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_SetStock(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway)
		wantCode int
		wantBody string
	}{
		{
			name: "ok",
			body: `{"stock":42}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(adminUser)(auth)
				svc.EXPECT().AdminSetStock(gomock.Any(), 7, 42).
					Return(model.Book{ID: 7, Title: "Dune", Author: "Herbert", Category: "SciFi", Price: 150, Stock: 42}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"id":7,"title":"Dune","author":"Herbert","category":"SciFi","price":150,"stock":42,"coverUrl":null,"addedAt":"0001-01-01T00:00:00Z"}`,
		},
		{
			name: "fractional stock is floored",
			body: `{"stock":2.9}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(adminUser)(auth)
				svc.EXPECT().AdminSetStock(gomock.Any(), 7, 2).
					Return(model.Book{ID: 7, Stock: 2}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"id":7,"title":"","author":"","category":"","price":0,"stock":2,"coverUrl":null,"addedAt":"0001-01-01T00:00:00Z"}`,
		},
		{
			name:     "negative stock",
			body:     `{"stock":-1}`,
			setup:    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(adminUser)(auth) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid_stock"}`,
		},
		{
			name:     "missing stock",
			body:     `{}`,
			setup:    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(adminUser)(auth) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"missing_fields"}`,
		},
		{
			name:     "non-admin forbidden",
			body:     `{"stock":42}`,
			setup:    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(demoUser)(auth) },
			wantCode: http.StatusForbidden,
			wantBody: `{"error":"forbidden"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPatch, "/api/v1/admin/books/7/stock", tt.body, tt.setup)
			require.Equal(t, tt.wantCode, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_GetCatalog(t *testing.T) {
	payload := `[{"id":1,"title":"Dune"}]`
	rec := serve(t, http.MethodGet, "/api/v1/books", "", func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
		svc.EXPECT().GetCatalog(gomock.Any()).Return([]byte(payload), nil)
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, payload, rec.Body.String())
}

func TestHandler_GetBook(t *testing.T) {
	rec := serve(t, http.MethodGet, "/api/v1/books/999", "", func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
		svc.EXPECT().GetBook(gomock.Any(), 999).Return(model.Book{}, errs.ErrBookNotFound)
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestHandler_CreateBook(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway)
		wantCode int
		wantBody string
	}{
		{
			name: "ok",
			body: `{"title":"Dune","author":"Herbert","category":"SciFi","price":150,"stock":2}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(adminUser)(auth)
				svc.EXPECT().
					CreateBook(gomock.Any(), model.NewBook{Title: "Dune", Author: "Herbert", Category: "SciFi", Price: 150, Stock: 2}).
					Return(model.Book{ID: 1, Title: "Dune", Author: "Herbert", Category: "SciFi", Price: 150, Stock: 2}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `{"id":1,"title":"Dune","author":"Herbert","category":"SciFi","price":150,"stock":2,"coverUrl":null,"addedAt":"0001-01-01T00:00:00Z"}`,
		},
		{
			name:     "missing title",
			body:     `{"author":"Herbert","category":"SciFi","price":150}`,
			setup:    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(adminUser)(auth) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"missing_fields"}`,
		},
		{
			name:     "negative provided stock",
			body:     `{"title":"Dune","author":"Herbert","category":"SciFi","price":150,"stock":-1}`,
			setup:    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(adminUser)(auth) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid_stock"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/api/v1/books", tt.body, tt.setup)
			require.Equal(t, tt.wantCode, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_CreateFavorite(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway)
		wantCode int
		wantBody string
	}{
		{
			name: "ok",
			body: `{"bookId":7}`,
			setup: func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(demoUser)(auth)
				bookID := 7
				svc.EXPECT().
					CreateFavorite(gomock.Any(), 3, model.FavoriteCreateRequest{BookID: &bookID}).
					Return(5, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `{"id":5}`,
		},
		{
			name:     "no target",
			body:     `{}`,
			setup:    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(demoUser)(auth) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"missing_fields"}`,
		},
		{
			name:     "both targets",
			body:     `{"bookId":7,"customBookId":2}`,
			setup:    func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(demoUser)(auth) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"ambiguous_target"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/api/v1/favorites", tt.body, tt.setup)
			require.Equal(t, tt.wantCode, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_ImportBooks(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		rec := serve(t, http.MethodPost, "/api/v1/books/import",
			`[{"title":"Dune","author":"Herbert","category":"SciFi","price":150,"stock":2}]`,
			func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(adminUser)(auth)
				svc.EXPECT().ImportBooks(gomock.Any(), gomock.Len(1)).Return(1, nil)
			})
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"inserted":1}`, rec.Body.String())
	})

	t.Run("wrapped object", func(t *testing.T) {
		rec := serve(t, http.MethodPost, "/api/v1/books/import",
			`{"books":[{"title":"Dune","author":"Herbert","category":"SciFi","price":150,"stock":2}]}`,
			func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
				asUser(adminUser)(auth)
				svc.EXPECT().ImportBooks(gomock.Any(), gomock.Len(1)).Return(1, nil)
			})
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"inserted":1}`, rec.Body.String())
	})

	t.Run("empty batch", func(t *testing.T) {
		rec := serve(t, http.MethodPost, "/api/v1/books/import", `[]`,
			func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) { asUser(adminUser)(auth) })
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"missing_books"}`, rec.Body.String())
	})
}

func TestHandler_SetBudget(t *testing.T) {
	rec := serve(t, http.MethodPatch, "/api/v1/admin/users/3/budget", `{"budget":900}`,
		func(svc *service_mocks.MockRentalService, auth *service_mocks.MockAuthGateway) {
			asUser(adminUser)(auth)
			svc.EXPECT().SetBudget(gomock.Any(), 3, 900.0).
				Return(model.Account{ID: 3, Name: "Demo User", Email: "demo@library.local", Role: "user", Budget: 900}, nil)
		})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"id":3,"name":"Demo User","email":"demo@library.local","role":"user","budget":900,"createdAt":"0001-01-01T00:00:00Z"}`,
		rec.Body.String())
}

func TestHandler_Health(t *testing.T) {
	rec := serve(t, http.MethodGet, "/manage/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}
