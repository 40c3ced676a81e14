package handler

import (
	"encoding/json"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/riubs/rental-service/internal/errs"
	"github.com/riubs/rental-service/internal/model"
	mw "github.com/riubs/rental-service/pkg/middleware"
	"github.com/riubs/rental-service/pkg/validate"
)

type Handler struct {
	svc  RentalService
	auth AuthGateway
	log  *zap.Logger
}

func New(svc RentalService, auth AuthGateway, log *zap.Logger) *Handler {
	return &Handler{
		svc:  svc,
		auth: auth,
		log:  log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig()),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
	)

	api.GET("/books", h.GetCatalog)
	api.GET("/books/:id", h.GetBook)
	api.POST("/books", h.CreateBook, h.requireAdmin)
	api.POST("/books/import", h.ImportBooks, h.requireAdmin)

	api.POST("/rentals", h.Rent, h.authenticate)
	api.POST("/rentals/:rentalUid/return", h.Return, h.authenticate)
	api.GET("/rentals/current", h.CurrentRentals, h.authenticate)
	api.GET("/rentals/history", h.RentalHistory, h.authenticate)

	api.GET("/favorites", h.ListFavorites, h.authenticate)
	api.POST("/favorites", h.CreateFavorite, h.authenticate)
	api.DELETE("/favorites/:id", h.DeleteFavorite, h.authenticate)

	api.GET("/custom-books", h.ListCustomBooks, h.authenticate)
	api.POST("/custom-books/import", h.ImportCustomBooks, h.authenticate)

	api.GET("/stats/user", h.UserStats, h.authenticate)

	admin := api.Group("/admin", h.requireAdmin)
	admin.GET("/users", h.ListUsers)
	admin.PATCH("/users/:id/budget", h.SetBudget)
	admin.GET("/books", h.ListBooksAdmin)
	admin.PATCH("/books/:id/stock", h.SetStock)
	admin.GET("/stats", h.AdminStats)

	return e
}

type errorResponse struct {
	Error string `json:"error"`
}

func errResp(code string) errorResponse {
	return errorResponse{Error: code}
}

// respondError maps service sentinels to the wire error codes; anything
// unrecognized is logged and surfaced as an opaque internal_error.
func (h *Handler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrBookNotFound):
		return c.JSON(http.StatusNotFound, errResp("book_not_found"))
	case errors.Is(err, errs.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, errResp("account_not_found"))
	case errors.Is(err, errs.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errResp("user_not_found"))
	case errors.Is(err, errs.ErrRentalNotFound):
		return c.JSON(http.StatusNotFound, errResp("rental_not_found"))
	case errors.Is(err, errs.ErrFavoriteNotFound):
		return c.JSON(http.StatusNotFound, errResp("favorite_not_found"))
	case errors.Is(err, errs.ErrOutOfStock):
		return c.JSON(http.StatusBadRequest, errResp("out_of_stock"))
	case errors.Is(err, errs.ErrInsufficientBudget):
		return c.JSON(http.StatusBadRequest, errResp("insufficient_budget"))
	case errors.Is(err, errs.ErrInvalidStock):
		return c.JSON(http.StatusBadRequest, errResp("invalid_stock"))
	case errors.Is(err, errs.ErrAmbiguousTarget):
		return c.JSON(http.StatusBadRequest, errResp("ambiguous_target"))
	}
	h.log.Error("internal error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errResp("internal_error"))
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetCatalog(c echo.Context) error {
	payload, err := h.svc.GetCatalog(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSONBlob(http.StatusOK, payload)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errResp("not_found"))
	}
	book, err := h.svc.GetBook(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, errResp("not_found"))
		}
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) Rent(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	var req model.RentRequest
	if err := c.Bind(&req); err != nil || req.BookID == 0 {
		return c.JSON(http.StatusBadRequest, errResp("missing_fields"))
	}

	resp, err := h.svc.Rent(c.Request().Context(), user.ID, req.BookID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Return(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	rentalUID := c.Param("rentalUid")
	if rentalUID == "" {
		return c.JSON(http.StatusBadRequest, errResp("missing_fields"))
	}

	if err := h.svc.Return(c.Request().Context(), user.ID, rentalUID); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "returned"})
}

func (h *Handler) CurrentRentals(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	items, err := h.svc.CurrentRentals(c.Request().Context(), user.ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) RentalHistory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	items, err := h.svc.RentalHistory(c.Request().Context(), user.ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func randomStock() int {
	return 1 + rand.Intn(10)
}

func newBookFromRequest(req model.CreateBookRequest) (model.NewBook, error) {
	book := model.NewBook{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Price:    *req.Price,
		CoverURL: req.CoverURL,
		Stock:    randomStock(),
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return model.NewBook{}, errs.ErrInvalidStock
		}
		book.Stock = *req.Stock
	}
	return book, nil
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errResp("missing_fields"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errResp("missing_fields"))
	}
	book, err := newBookFromRequest(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errResp("invalid_stock"))
	}

	created, err := h.svc.CreateBook(c.Request().Context(), book)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// decodeBookBatch accepts either a bare JSON array or {"books": [...]}.
func decodeBookBatch(body []byte) ([]model.CreateBookRequest, bool) {
	var books []model.CreateBookRequest
	if err := json.Unmarshal(body, &books); err == nil {
		return books, true
	}
	var payload model.ImportBooksRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false
	}
	return payload.Books, true
}

func (h *Handler) ImportBooks(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errResp("missing_books"))
	}
	reqs, ok := decodeBookBatch(body)
	if !ok || len(reqs) == 0 {
		return c.JSON(http.StatusBadRequest, errResp("missing_books"))
	}

	books := make([]model.NewBook, 0, len(reqs))
	for _, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errResp("invalid_book"))
		}
		book, err := newBookFromRequest(req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errResp("invalid_book"))
		}
		books = append(books, book)
	}

	inserted, err := h.svc.ImportBooks(c.Request().Context(), books)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"inserted": inserted})
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListAccounts(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) SetBudget(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errResp("user_not_found"))
	}
	var req model.SetBudgetRequest
	if err := c.Bind(&req); err != nil || req.Budget == nil {
		return c.JSON(http.StatusBadRequest, errResp("missing_fields"))
	}

	acc, err := h.svc.SetBudget(c.Request().Context(), id, *req.Budget)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, acc)
}

func (h *Handler) ListBooksAdmin(c echo.Context) error {
	books, err := h.svc.ListBooks(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) SetStock(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errResp("book_not_found"))
	}
	var req model.SetStockRequest
	if err := c.Bind(&req); err != nil || req.Stock == nil {
		return c.JSON(http.StatusBadRequest, errResp("missing_fields"))
	}
	if *req.Stock < 0 || math.IsNaN(*req.Stock) || math.IsInf(*req.Stock, 0) {
		return c.JSON(http.StatusBadRequest, errResp("invalid_stock"))
	}

	book, err := h.svc.AdminSetStock(c.Request().Context(), id, int(math.Floor(*req.Stock)))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) AdminStats(c echo.Context) error {
	stats, err := h.svc.AdminStats(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) UserStats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	stats, err := h.svc.UserStats(c.Request().Context(), user.ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListFavorites(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	items, err := h.svc.ListFavorites(c.Request().Context(), user.ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateFavorite(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	var req model.FavoriteCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errResp("missing_fields"))
	}
	if req.BookID == nil && req.CustomBookID == nil {
		return c.JSON(http.StatusBadRequest, errResp("missing_fields"))
	}
	if req.BookID != nil && req.CustomBookID != nil {
		return c.JSON(http.StatusBadRequest, errResp("ambiguous_target"))
	}

	id, err := h.svc.CreateFavorite(c.Request().Context(), user.ID, req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]int{"id": id})
}

func (h *Handler) DeleteFavorite(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errResp("favorite_not_found"))
	}
	if err := h.svc.DeleteFavorite(c.Request().Context(), user.ID, id); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ListCustomBooks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	items, err := h.svc.ListCustomBooks(c.Request().Context(), user.ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ImportCustomBooks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errResp("missing_books"))
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		var payload struct {
			Books []json.RawMessage `json:"books"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return c.JSON(http.StatusBadRequest, errResp("missing_books"))
		}
		raws = payload.Books
	}
	if len(raws) == 0 {
		return c.JSON(http.StatusBadRequest, errResp("missing_books"))
	}

	books := make([]model.CustomBook, 0, len(raws))
	for _, raw := range raws {
		var req model.CustomBookRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return c.JSON(http.StatusBadRequest, errResp("invalid_book"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errResp("invalid_book"))
		}
		books = append(books, model.CustomBook{
			Title:    req.Title,
			Author:   req.Author,
			Category: req.Category,
			Price:    *req.Price,
			CoverURL: req.CoverURL,
			Source:   raw,
		})
	}

	inserted, err := h.svc.ImportCustomBooks(c.Request().Context(), user.ID, books)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"inserted": inserted})
}
