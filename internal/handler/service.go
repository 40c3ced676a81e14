package handler

import (
	"context"

	"github.com/riubs/rental-service/internal/model"
	"github.com/riubs/rental-service/internal/service"
	"github.com/riubs/rental-service/pkg/authgw"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=service_mocks

type RentalService interface {
	Rent(ctx context.Context, accountID, bookID int) (model.RentResponse, error)
	Return(ctx context.Context, accountID int, rentalUID string) error
	AdminSetStock(ctx context.Context, bookID, stock int) (model.Book, error)

	GetCatalog(ctx context.Context) ([]byte, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	CreateBook(ctx context.Context, book model.NewBook) (model.Book, error)
	ImportBooks(ctx context.Context, books []model.NewBook) (int, error)

	CurrentRentals(ctx context.Context, userID int) ([]model.RentalView, error)
	RentalHistory(ctx context.Context, userID int) ([]model.RentalView, error)

	ListAccounts(ctx context.Context) ([]model.Account, error)
	SetBudget(ctx context.Context, userID int, budget float64) (model.Account, error)
	AdminStats(ctx context.Context) (model.AdminStats, error)
	UserStats(ctx context.Context, userID int) (model.UserStats, error)

	ListFavorites(ctx context.Context, userID int) ([]model.Favorite, error)
	CreateFavorite(ctx context.Context, userID int, req model.FavoriteCreateRequest) (int, error)
	DeleteFavorite(ctx context.Context, userID, favoriteID int) error

	ListCustomBooks(ctx context.Context, userID int) ([]model.CustomBook, error)
	ImportCustomBooks(ctx context.Context, userID int, books []model.CustomBook) (int, error)
}

var _ RentalService = (*service.Service)(nil)

// AuthGateway resolves request credentials to a user identity. An invalid
// credential and a gateway failure look the same to the caller.
type AuthGateway interface {
	Validate(ctx context.Context, authHeader, cookieHeader string) (authgw.User, bool)
}

var _ AuthGateway = (*authgw.Client)(nil)
