package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/riubs/rental-service/internal/errs"
	"github.com/riubs/rental-service/internal/model"
)

type Repository interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, book model.NewBook) (model.Book, error)
	ImportBooks(ctx context.Context, books []model.NewBook) (int, error)

	GetAccount(ctx context.Context, id int) (model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	SetBudget(ctx context.Context, userID int, budget float64) (model.Account, error)
	EnsureAccount(ctx context.Context, acc model.Account) error

	Rent(ctx context.Context, accountID, bookID int, price float64) (model.Rental, float64, error)
	ReturnRental(ctx context.Context, accountID int, rentalUID string) (int, error)
	SetStock(ctx context.Context, bookID, stock int) (model.Book, error)
	CurrentRentals(ctx context.Context, userID int) ([]model.RentalView, error)
	RentalHistory(ctx context.Context, userID int) ([]model.RentalView, error)

	AdminStats(ctx context.Context) (model.AdminStats, error)
	UserStats(ctx context.Context, userID int) (model.UserStats, error)

	ListFavorites(ctx context.Context, userID int) ([]model.Favorite, error)
	CreateFavorite(ctx context.Context, userID int, req model.FavoriteCreateRequest) (int, error)
	DeleteFavorite(ctx context.Context, userID, favoriteID int) error

	ListCustomBooks(ctx context.Context, userID int) ([]model.CustomBook, error)
	ImportCustomBooks(ctx context.Context, userID int, books []model.CustomBook) (int, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName       = `users`
	booksTableName       = `books`
	rentalsTableName     = `rentals`
	customBooksTableName = `custom_books`
	favoritesTableName   = `favorite_books`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isPgErr(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// Rent commits the three effects of a rental as one transaction. Both the
// stock decrement and the budget debit are guarded conditional writes:
// whichever guard fails, zero rows are affected and the whole transaction
// rolls back. Advisory precondition checks belong to the caller.
func (r *repository) Rent(ctx context.Context, accountID, bookID int, price float64) (model.Rental, float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Rental{}, 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`update books set stock = stock - 1 where id = $1 and stock > 0`, bookID)
	if err != nil {
		return model.Rental{}, 0, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Rental{}, 0, err
	} else if n == 0 {
		return model.Rental{}, 0, errs.ErrOutOfStock
	}

	var newBudget float64
	err = tx.QueryRowContext(ctx,
		`update users set budget = budget - $1 where id = $2 and budget >= $1 returning budget`,
		price, accountID).Scan(&newBudget)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Rental{}, 0, errs.ErrInsufficientBudget
		}
		return model.Rental{}, 0, err
	}

	q, args, err := qb.Insert(rentalsTableName).
		Columns("rental_uid", "user_id", "book_id").
		Values(uuid.New(), accountID, bookID).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Rental{}, 0, err
	}
	var rental model.Rental
	if err := tx.GetContext(ctx, &rental, q, args...); err != nil {
		if isPgErr(err, pgerrcode.ForeignKeyViolation) {
			return model.Rental{}, 0, errs.ErrAccountNotFound
		}
		r.log.Error("Rent insert", zap.String("q", q), zap.Any("args", args))
		return model.Rental{}, 0, err
	}

	if err := tx.Commit(); err != nil {
		return model.Rental{}, 0, err
	}
	return rental, newBudget, nil
}

// ReturnRental closes the rental and restores stock in one transaction.
// The close is a guarded conditional write on (uid, owner, still active);
// zero rows means the rental is absent, foreign, or already closed.
// The stock increment is unconditional: an admin override may have lowered
// stock below the outstanding rental count in the meantime.
func (r *repository) ReturnRental(ctx context.Context, accountID int, rentalUID string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	var bookID int
	err = tx.QueryRowContext(ctx,
		`update rentals set returned_at = now()
		 where rental_uid = $1 and user_id = $2 and returned_at is null
		 returning book_id`,
		rentalUID, accountID).Scan(&bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.ErrRentalNotFound
		}
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`update books set stock = stock + 1 where id = $1`, bookID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return bookID, nil
}

// SetStock is the admin override: it overwrites stock without consulting
// outstanding rentals.
func (r *repository) SetStock(ctx context.Context, bookID, stock int) (model.Book, error) {
	q := `update books set stock = $1 where id = $2
	      returning id, title, author, category, price, stock, cover_url, added_at`
	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, stock, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	q, args, err := qb.Select("id", "title", "author", "category", "price", "stock", "cover_url", "added_at").
		From(booksTableName).
		OrderBy("added_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	q, args, err := qb.Select("id", "title", "author", "category", "price", "stock", "cover_url", "added_at").
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) CreateBook(ctx context.Context, book model.NewBook) (model.Book, error) {
	q, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "category", "price", "stock", "cover_url").
		Values(book.Title, book.Author, book.Category, book.Price, book.Stock, book.CoverURL).
		Suffix("returning id, title, author, category, price, stock, cover_url, added_at").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var created model.Book
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return created, nil
}

// ImportBooks inserts the batch all-or-nothing. No dedupe key is enforced
// against existing rows.
func (r *repository) ImportBooks(ctx context.Context, books []model.NewBook) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	for _, book := range books {
		q, args, err := qb.Insert(booksTableName).
			Columns("title", "author", "category", "price", "stock", "cover_url").
			Values(book.Title, book.Author, book.Category, book.Price, book.Stock, book.CoverURL).
			ToSql()
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(books), nil
}

func (r *repository) GetAccount(ctx context.Context, id int) (model.Account, error) {
	q, args, err := qb.Select("id", "name", "email", "role", "budget", "created_at").
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Account{}, err
	}
	var acc model.Account
	if err := r.db.GetContext(ctx, &acc, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, errs.ErrAccountNotFound
		}
		return model.Account{}, err
	}
	return acc, nil
}

func (r *repository) ListAccounts(ctx context.Context) ([]model.Account, error) {
	q, args, err := qb.Select("id", "name", "email", "role", "budget", "created_at").
		From(usersTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	accs := make([]model.Account, 0)
	if err := r.db.SelectContext(ctx, &accs, q, args...); err != nil {
		return nil, err
	}
	return accs, nil
}

func (r *repository) SetBudget(ctx context.Context, userID int, budget float64) (model.Account, error) {
	q := `update users set budget = $1 where id = $2
	      returning id, name, email, role, budget, created_at`
	var acc model.Account
	if err := r.db.GetContext(ctx, &acc, q, budget, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, errs.ErrUserNotFound
		}
		return model.Account{}, err
	}
	return acc, nil
}

// EnsureAccount inserts the account unless one with the same email exists.
func (r *repository) EnsureAccount(ctx context.Context, acc model.Account) error {
	q := `insert into users (name, email, role, budget)
	      values ($1, $2, $3, $4)
	      on conflict (email) do nothing`
	_, err := r.db.ExecContext(ctx, q, acc.Name, acc.Email, acc.Role, acc.Budget)
	return err
}

const rentalViewColumns = `r.rental_uid, r.rented_at, r.returned_at,
	b.title, b.author, b.category, b.price, b.cover_url`

func (r *repository) CurrentRentals(ctx context.Context, userID int) ([]model.RentalView, error) {
	q := `select ` + rentalViewColumns + `
	      from rentals r join books b on r.book_id = b.id
	      where r.user_id = $1 and r.returned_at is null
	      order by r.rented_at desc`
	items := make([]model.RentalView, 0)
	if err := r.db.SelectContext(ctx, &items, q, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) RentalHistory(ctx context.Context, userID int) ([]model.RentalView, error) {
	q := `select ` + rentalViewColumns + `
	      from rentals r join books b on r.book_id = b.id
	      where r.user_id = $1
	      order by r.rented_at desc`
	items := make([]model.RentalView, 0)
	if err := r.db.SelectContext(ctx, &items, q, userID); err != nil {
		return nil, err
	}
	return items, nil
}

const monthSeriesCTE = `with months as (
	select date_trunc('month', now()) - interval '11 months' + (n || ' months')::interval as month
	from generate_series(0, 11) n
)`

func (r *repository) AdminStats(ctx context.Context) (model.AdminStats, error) {
	var stats model.AdminStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q := `select
			(select count(*) from users)::int as users,
			(select count(*) from books)::int as books,
			(select count(*) from rentals)::int as rentals`
		return r.db.GetContext(gctx, &stats.Totals, q)
	})
	g.Go(func() error {
		q := monthSeriesCTE + `
		select to_char(month, 'YYYY-MM') as month, count(u.id)::int as count
		from months m left join users u on date_trunc('month', u.created_at) = m.month
		group by month order by month`
		return r.db.SelectContext(gctx, &stats.UsersByMonth, q)
	})
	g.Go(func() error {
		q := monthSeriesCTE + `
		select to_char(month, 'YYYY-MM') as month, count(b.id)::int as count
		from months m left join books b on date_trunc('month', b.added_at) = m.month
		group by month order by month`
		return r.db.SelectContext(gctx, &stats.BooksByMonth, q)
	})
	g.Go(func() error {
		q := monthSeriesCTE + `
		select to_char(month, 'YYYY-MM') as month, count(r.id)::int as count
		from months m left join rentals r on date_trunc('month', r.rented_at) = m.month
		group by month order by month`
		return r.db.SelectContext(gctx, &stats.RentalsByMonth, q)
	})

	if err := g.Wait(); err != nil {
		return model.AdminStats{}, err
	}
	return stats, nil
}

func (r *repository) UserStats(ctx context.Context, userID int) (model.UserStats, error) {
	var stats model.UserStats

	q := monthSeriesCTE + `
	select to_char(month, 'YYYY-MM') as month, count(r.id)::int as count
	from months m left join rentals r
		on date_trunc('month', r.rented_at) = m.month and r.user_id = $1
	group by month order by month`
	if err := r.db.SelectContext(ctx, &stats.RentalTrend, q, userID); err != nil {
		return model.UserStats{}, err
	}

	q = `select b.category, count(*)::int as count
	     from rentals r join books b on r.book_id = b.id
	     where r.user_id = $1
	     group by b.category order by count desc`
	stats.CategoryBreakdown = make([]model.CategoryCount, 0)
	if err := r.db.SelectContext(ctx, &stats.CategoryBreakdown, q, userID); err != nil {
		return model.UserStats{}, err
	}
	return stats, nil
}

func (r *repository) ListFavorites(ctx context.Context, userID int) ([]model.Favorite, error) {
	q := `select f.id as favorite_id, 'library' as source, b.id as book_id,
			b.title, b.author, b.category, b.price, b.cover_url, f.created_at
	      from favorite_books f join books b on f.book_id = b.id
	      where f.user_id = $1
	      union all
	      select f.id as favorite_id, 'custom' as source, c.id as book_id,
			c.title, c.author, c.category, c.price, c.cover_url, f.created_at
	      from favorite_books f join custom_books c on f.custom_book_id = c.id
	      where f.user_id = $1
	      order by created_at desc`
	items := make([]model.Favorite, 0)
	if err := r.db.SelectContext(ctx, &items, q, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CreateFavorite(ctx context.Context, userID int, req model.FavoriteCreateRequest) (int, error) {
	q, args, err := qb.Insert(favoritesTableName).
		Columns("user_id", "book_id", "custom_book_id").
		Values(userID, req.BookID, req.CustomBookID).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := r.db.GetContext(ctx, &id, q, args...); err != nil {
		if isPgErr(err, pgerrcode.ForeignKeyViolation) {
			return 0, errs.ErrBookNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) DeleteFavorite(ctx context.Context, userID, favoriteID int) error {
	var id int
	err := r.db.QueryRowContext(ctx,
		`delete from favorite_books where id = $1 and user_id = $2 returning id`,
		favoriteID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrFavoriteNotFound
		}
		return err
	}
	return nil
}

func (r *repository) ListCustomBooks(ctx context.Context, userID int) ([]model.CustomBook, error) {
	q, args, err := qb.Select("id", "title", "author", "category", "price", "cover_url", "source", "created_at").
		From(customBooksTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.CustomBook, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ImportCustomBooks(ctx context.Context, userID int, books []model.CustomBook) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	for _, book := range books {
		q, args, err := qb.Insert(customBooksTableName).
			Columns("user_id", "title", "author", "category", "price", "cover_url", "source").
			Values(userID, book.Title, book.Author, book.Category, book.Price, book.CoverURL, book.Source).
			ToSql()
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(books), nil
}
