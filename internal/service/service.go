package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/riubs/rental-service/internal/errs"
	"github.com/riubs/rental-service/internal/model"
	"github.com/riubs/rental-service/internal/queue"
	"github.com/riubs/rental-service/internal/repository"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=service_mocks

// CatalogCache fronts the rendered catalog listing. Get returns nil on a miss.
type CatalogCache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

// Augmenter supplies catalog candidates from the external source when the
// store is under-populated.
type Augmenter interface {
	Fetch(ctx context.Context) ([]model.NewBook, error)
	Limit() int
}

type Service struct {
	log     *zap.Logger
	repo    repository.Repository
	cache   CatalogCache
	augment Augmenter
	queue   queue.Enqueuer
}

func NewService(repo repository.Repository, cache CatalogCache, augment Augmenter, q queue.Enqueuer, log *zap.Logger) *Service {
	return &Service{
		log:     log,
		repo:    repo,
		cache:   cache,
		augment: augment,
		queue:   q,
	}
}

// Rent checks preconditions by reading current state, then commits the
// atomic rent transaction. The reads are advisory only: the transaction's
// guarded writes are what actually serialize concurrent rents, so a passed
// check can still lose the race and surface the same business error.
// Cache invalidation and event publishing happen strictly after commit.
func (s *Service) Rent(ctx context.Context, accountID, bookID int) (model.RentResponse, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return model.RentResponse{}, err
	}
	if book.Stock <= 0 {
		return model.RentResponse{}, errs.ErrOutOfStock
	}
	acc, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return model.RentResponse{}, err
	}
	if acc.Budget < book.Price {
		return model.RentResponse{}, errs.ErrInsufficientBudget
	}

	rental, newBudget, err := s.repo.Rent(ctx, accountID, book.ID, book.Price)
	if err != nil {
		return model.RentResponse{}, err
	}

	s.invalidateCatalog(ctx)
	s.publish(model.RentalEvent{
		Event:     model.EventRented,
		RentalUid: rental.RentalUid,
		AccountID: accountID,
		BookID:    book.ID,
		At:        rental.RentedAt,
	})

	return model.RentResponse{Message: "rented", Budget: newBudget}, nil
}

// Return closes the rental and restores stock. No budget refund.
func (s *Service) Return(ctx context.Context, accountID int, rentalUID string) error {
	bookID, err := s.repo.ReturnRental(ctx, accountID, rentalUID)
	if err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	s.publish(model.RentalEvent{
		Event:     model.EventReturned,
		RentalUid: rentalUID,
		AccountID: accountID,
		BookID:    bookID,
		At:        time.Now().UTC(),
	})
	return nil
}

// AdminSetStock overwrites stock without reconciling against outstanding
// active rentals. Stock and the active rental count are independently
// adjustable by design.
func (s *Service) AdminSetStock(ctx context.Context, bookID, stock int) (model.Book, error) {
	book, err := s.repo.SetStock(ctx, bookID, stock)
	if err != nil {
		return model.Book{}, err
	}
	s.invalidateCatalog(ctx)
	return book, nil
}

// GetCatalog serves the listing read-through: cache hit wins; on a miss the
// store is read, backfilled from the external source when short of the
// target, and the rendered payload is cached with the configured TTL.
func (s *Service) GetCatalog(ctx context.Context) ([]byte, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("catalog cache get", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) < s.augment.Limit() {
		if books, err = s.augmentCatalog(ctx, books); err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(books)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, payload); err != nil {
		s.log.Warn("catalog cache set", zap.Error(err))
	}
	return payload, nil
}

// augmentCatalog backfills the under-populated catalog from the external
// source. Failure is non-fatal: the shorter listing is served as is.
func (s *Service) augmentCatalog(ctx context.Context, books []model.Book) ([]model.Book, error) {
	candidates, err := s.augment.Fetch(ctx)
	if err != nil {
		s.log.Warn("catalog augmentation failed", zap.Error(err))
		return books, nil
	}
	if len(candidates) == 0 {
		return books, nil
	}
	if _, err := s.repo.ImportBooks(ctx, candidates); err != nil {
		s.log.Warn("catalog augmentation insert failed", zap.Error(err))
		return books, nil
	}
	return s.repo.ListBooks(ctx)
}

func (s *Service) CreateBook(ctx context.Context, book model.NewBook) (model.Book, error) {
	created, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return model.Book{}, err
	}
	s.invalidateCatalog(ctx)
	return created, nil
}

func (s *Service) ImportBooks(ctx context.Context, books []model.NewBook) (int, error) {
	n, err := s.repo.ImportBooks(ctx, books)
	if err != nil {
		return 0, err
	}
	s.invalidateCatalog(ctx)
	return n, nil
}

func (s *Service) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

// ListBooks bypasses the cache; admin views read the store fresh.
func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *Service) CurrentRentals(ctx context.Context, userID int) ([]model.RentalView, error) {
	return s.repo.CurrentRentals(ctx, userID)
}

func (s *Service) RentalHistory(ctx context.Context, userID int) ([]model.RentalView, error) {
	return s.repo.RentalHistory(ctx, userID)
}

func (s *Service) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) SetBudget(ctx context.Context, userID int, budget float64) (model.Account, error) {
	return s.repo.SetBudget(ctx, userID, budget)
}

func (s *Service) AdminStats(ctx context.Context) (model.AdminStats, error) {
	return s.repo.AdminStats(ctx)
}

func (s *Service) UserStats(ctx context.Context, userID int) (model.UserStats, error) {
	return s.repo.UserStats(ctx, userID)
}

func (s *Service) ListFavorites(ctx context.Context, userID int) ([]model.Favorite, error) {
	return s.repo.ListFavorites(ctx, userID)
}

func (s *Service) CreateFavorite(ctx context.Context, userID int, req model.FavoriteCreateRequest) (int, error) {
	return s.repo.CreateFavorite(ctx, userID, req)
}

func (s *Service) DeleteFavorite(ctx context.Context, userID, favoriteID int) error {
	return s.repo.DeleteFavorite(ctx, userID, favoriteID)
}

func (s *Service) ListCustomBooks(ctx context.Context, userID int) ([]model.CustomBook, error) {
	return s.repo.ListCustomBooks(ctx, userID)
}

func (s *Service) ImportCustomBooks(ctx context.Context, userID int, books []model.CustomBook) (int, error) {
	return s.repo.ImportCustomBooks(ctx, userID, books)
}

// invalidateCatalog is called only after a committed mutation. An eviction
// failure leaves a stale entry that the TTL bounds, so it is logged and
// swallowed rather than failing the already-committed request.
func (s *Service) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("catalog cache invalidate", zap.Error(err))
	}
}

func (s *Service) publish(event model.RentalEvent) {
	if err := s.queue.Enqueue(queue.RentalEventsTopic, event); err != nil {
		s.log.Warn("publish rental event", zap.Error(err))
	}
}
