package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/riubs/rental-service/internal/errs"
	"github.com/riubs/rental-service/internal/model"
	"github.com/riubs/rental-service/internal/queue"
	service_mocks "github.com/riubs/rental-service/internal/service/mocks"
)

type mocks struct {
	repo    *service_mocks.MockRepository
	cache   *service_mocks.MockCatalogCache
	augment *service_mocks.MockAugmenter
	queue   *service_mocks.MockEnqueuer
}

func newService(t *testing.T) (*Service, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := mocks{
		repo:    service_mocks.NewMockRepository(ctrl),
		cache:   service_mocks.NewMockCatalogCache(ctrl),
		augment: service_mocks.NewMockAugmenter(ctrl),
		queue:   service_mocks.NewMockEnqueuer(ctrl),
	}
	return NewService(m.repo, m.cache, m.augment, m.queue, zap.NewNop()), m
}

func TestService_Rent(t *testing.T) {
	ctx := context.Background()
	book := model.Book{ID: 7, Title: "Dune", Price: 150, Stock: 2}
	account := model.Account{ID: 3, Budget: 500}

	t.Run("ok", func(t *testing.T) {
		svc, m := newService(t)
		rental := model.Rental{RentalUid: "c0b1e2d3", UserID: 3, BookID: 7}

		m.repo.EXPECT().GetBook(ctx, 7).Return(book, nil)
		m.repo.EXPECT().GetAccount(ctx, 3).Return(account, nil)
		m.repo.EXPECT().Rent(ctx, 3, 7, 150.0).Return(rental, 350.0, nil)
		m.cache.EXPECT().Invalidate(ctx).Return(nil)
		m.queue.EXPECT().Enqueue(queue.RentalEventsTopic, gomock.Any()).Return(nil)

		resp, err := svc.Rent(ctx, 3, 7)
		require.NoError(t, err)
		require.Equal(t, model.RentResponse{Message: "rented", Budget: 350}, resp)
	})

	t.Run("advisory out of stock", func(t *testing.T) {
		svc, m := newService(t)
		empty := book
		empty.Stock = 0
		m.repo.EXPECT().GetBook(ctx, 7).Return(empty, nil)

		_, err := svc.Rent(ctx, 3, 7)
		require.ErrorIs(t, err, errs.ErrOutOfStock)
	})

	t.Run("advisory insufficient budget", func(t *testing.T) {
		svc, m := newService(t)
		poor := account
		poor.Budget = 10
		m.repo.EXPECT().GetBook(ctx, 7).Return(book, nil)
		m.repo.EXPECT().GetAccount(ctx, 3).Return(poor, nil)

		_, err := svc.Rent(ctx, 3, 7)
		require.ErrorIs(t, err, errs.ErrInsufficientBudget)
	})

	t.Run("lost race keeps cache intact", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.EXPECT().GetBook(ctx, 7).Return(book, nil)
		m.repo.EXPECT().GetAccount(ctx, 3).Return(account, nil)
		m.repo.EXPECT().Rent(ctx, 3, 7, 150.0).Return(model.Rental{}, 0.0, errs.ErrOutOfStock)

		_, err := svc.Rent(ctx, 3, 7)
		require.ErrorIs(t, err, errs.ErrOutOfStock)
	})

	t.Run("invalidate failure does not fail a committed rent", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.EXPECT().GetBook(ctx, 7).Return(book, nil)
		m.repo.EXPECT().GetAccount(ctx, 3).Return(account, nil)
		m.repo.EXPECT().Rent(ctx, 3, 7, 150.0).Return(model.Rental{RentalUid: "u"}, 350.0, nil)
		m.cache.EXPECT().Invalidate(ctx).Return(errors.New("redis down"))
		m.queue.EXPECT().Enqueue(queue.RentalEventsTopic, gomock.Any()).Return(nil)

		resp, err := svc.Rent(ctx, 3, 7)
		require.NoError(t, err)
		require.Equal(t, 350.0, resp.Budget)
	})
}

func TestService_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("ok no refund", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.EXPECT().ReturnRental(ctx, 3, "uid-1").Return(7, nil)
		m.cache.EXPECT().Invalidate(ctx).Return(nil)
		m.queue.EXPECT().Enqueue(queue.RentalEventsTopic, gomock.Any()).Return(nil)

		require.NoError(t, svc.Return(ctx, 3, "uid-1"))
	})

	t.Run("not found keeps cache intact", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.EXPECT().ReturnRental(ctx, 3, "uid-1").Return(0, errs.ErrRentalNotFound)

		err := svc.Return(ctx, 3, "uid-1")
		require.ErrorIs(t, err, errs.ErrRentalNotFound)
	})
}

func TestService_AdminSetStock(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.EXPECT().SetStock(ctx, 7, 42).Return(model.Book{ID: 7, Stock: 42}, nil)
		m.cache.EXPECT().Invalidate(ctx).Return(nil)

		book, err := svc.AdminSetStock(ctx, 7, 42)
		require.NoError(t, err)
		require.Equal(t, 42, book.Stock)
	})

	t.Run("book not found", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.EXPECT().SetStock(ctx, 7, 42).Return(model.Book{}, errs.ErrBookNotFound)

		_, err := svc.AdminSetStock(ctx, 7, 42)
		require.ErrorIs(t, err, errs.ErrBookNotFound)
	})
}

func TestService_GetCatalog(t *testing.T) {
	ctx := context.Background()
	books := []model.Book{
		{ID: 1, Title: "Dune"},
		{ID: 2, Title: "Solaris"},
	}
	payload, err := json.Marshal(books)
	require.NoError(t, err)

	t.Run("cache hit", func(t *testing.T) {
		svc, m := newService(t)
		m.cache.EXPECT().Get(ctx).Return(payload, nil)

		got, err := svc.GetCatalog(ctx)
		require.NoError(t, err)
		require.JSONEq(t, string(payload), string(got))
	})

	t.Run("miss populated store", func(t *testing.T) {
		svc, m := newService(t)
		m.cache.EXPECT().Get(ctx).Return(nil, nil)
		m.repo.EXPECT().ListBooks(ctx).Return(books, nil)
		m.augment.EXPECT().Limit().Return(2)
		m.cache.EXPECT().Set(ctx, gomock.Any()).Return(nil)

		got, err := svc.GetCatalog(ctx)
		require.NoError(t, err)
		require.JSONEq(t, string(payload), string(got))
	})

	t.Run("miss short store triggers augmentation", func(t *testing.T) {
		svc, m := newService(t)
		candidates := []model.NewBook{{Title: "Hyperion", Author: "Simmons", Category: "SciFi", Price: 200, Stock: 3}}
		augmented := append(books, model.Book{ID: 3, Title: "Hyperion"})

		m.cache.EXPECT().Get(ctx).Return(nil, nil)
		m.repo.EXPECT().ListBooks(ctx).Return(books, nil)
		m.augment.EXPECT().Limit().Return(24)
		m.augment.EXPECT().Fetch(ctx).Return(candidates, nil)
		m.repo.EXPECT().ImportBooks(ctx, candidates).Return(1, nil)
		m.repo.EXPECT().ListBooks(ctx).Return(augmented, nil)
		m.cache.EXPECT().Set(ctx, gomock.Any()).Return(nil)

		got, err := svc.GetCatalog(ctx)
		require.NoError(t, err)

		var listed []model.Book
		require.NoError(t, json.Unmarshal(got, &listed))
		require.Len(t, listed, 3)
	})

	t.Run("augmentation failure is non-fatal", func(t *testing.T) {
		svc, m := newService(t)
		m.cache.EXPECT().Get(ctx).Return(nil, nil)
		m.repo.EXPECT().ListBooks(ctx).Return(books, nil)
		m.augment.EXPECT().Limit().Return(24)
		m.augment.EXPECT().Fetch(ctx).Return(nil, errors.New("openlibrary 503"))
		m.cache.EXPECT().Set(ctx, gomock.Any()).Return(nil)

		got, err := svc.GetCatalog(ctx)
		require.NoError(t, err)
		require.JSONEq(t, string(payload), string(got))
	})

	t.Run("cache get failure falls through to store", func(t *testing.T) {
		svc, m := newService(t)
		m.cache.EXPECT().Get(ctx).Return(nil, errors.New("redis down"))
		m.repo.EXPECT().ListBooks(ctx).Return(books, nil)
		m.augment.EXPECT().Limit().Return(2)
		m.cache.EXPECT().Set(ctx, gomock.Any()).Return(errors.New("redis down"))

		got, err := svc.GetCatalog(ctx)
		require.NoError(t, err)
		require.JSONEq(t, string(payload), string(got))
	})
}

func TestService_CreateBook(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)
	in := model.NewBook{Title: "Dune", Author: "Herbert", Category: "SciFi", Price: 150, Stock: 2}

	m.repo.EXPECT().CreateBook(ctx, in).Return(model.Book{ID: 1, Title: "Dune"}, nil)
	m.cache.EXPECT().Invalidate(ctx).Return(nil)

	book, err := svc.CreateBook(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 1, book.ID)
}

func TestService_ImportBooks(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)
	in := []model.NewBook{{Title: "Dune"}, {Title: "Solaris"}}

	m.repo.EXPECT().ImportBooks(ctx, in).Return(2, nil)
	m.cache.EXPECT().Invalidate(ctx).Return(nil)

	n, err := svc.ImportBooks(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
