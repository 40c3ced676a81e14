package model

import (
	"encoding/json"
	"time"
)

type Book struct {
	ID       int       `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Author   string    `json:"author" db:"author"`
	Category string    `json:"category" db:"category"`
	Price    float64   `json:"price" db:"price"`
	Stock    int       `json:"stock" db:"stock"`
	CoverURL *string   `json:"coverUrl" db:"cover_url"`
	AddedAt  time.Time `json:"addedAt" db:"added_at"`
}

// NewBook is a book candidate not yet in the catalog: admin creation, bulk
// import and external augmentation all funnel through it.
type NewBook struct {
	Title    string  `json:"title" validate:"required"`
	Author   string  `json:"author" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	CoverURL *string `json:"coverUrl"`
}

type Account struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	Budget    float64   `json:"budget" db:"budget"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Rental struct {
	ID         int        `json:"-" db:"id"`
	RentalUid  string     `json:"rentalUid" db:"rental_uid"`
	UserID     int        `json:"-" db:"user_id"`
	BookID     int        `json:"bookId" db:"book_id"`
	RentedAt   time.Time  `json:"rentedAt" db:"rented_at"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
}

// RentalView is a rental joined with its book for user-facing listings.
type RentalView struct {
	RentalUid  string     `json:"rentalUid" db:"rental_uid"`
	RentedAt   time.Time  `json:"rentedAt" db:"rented_at"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
	Title      string     `json:"title" db:"title"`
	Author     string     `json:"author" db:"author"`
	Category   string     `json:"category" db:"category"`
	Price      float64    `json:"price" db:"price"`
	CoverURL   *string    `json:"coverUrl" db:"cover_url"`
}

type RentRequest struct {
	BookID int `json:"bookId" validate:"required"`
}

type RentResponse struct {
	Message string  `json:"message"`
	Budget  float64 `json:"budget"`
}

type CreateBookRequest struct {
	Title    string   `json:"title" validate:"required"`
	Author   string   `json:"author" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Stock    *int     `json:"stock"`
	CoverURL *string  `json:"coverUrl"`
}

type ImportBooksRequest struct {
	Books []CreateBookRequest `json:"books"`
}

type SetStockRequest struct {
	Stock *float64 `json:"stock"`
}

type SetBudgetRequest struct {
	Budget *float64 `json:"budget"`
}

type CustomBook struct {
	ID        int             `json:"id" db:"id"`
	UserID    int             `json:"-" db:"user_id"`
	Title     string          `json:"title" db:"title"`
	Author    string          `json:"author" db:"author"`
	Category  string          `json:"category" db:"category"`
	Price     float64         `json:"price" db:"price"`
	CoverURL  *string         `json:"coverUrl" db:"cover_url"`
	Source    json.RawMessage `json:"source,omitempty" db:"source"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

type CustomBookRequest struct {
	Title    string   `json:"title" validate:"required"`
	Author   string   `json:"author" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	CoverURL *string  `json:"coverUrl"`
}

type FavoriteCreateRequest struct {
	BookID       *int `json:"bookId"`
	CustomBookID *int `json:"customBookId"`
}

type Favorite struct {
	FavoriteID int       `json:"favoriteId" db:"favorite_id"`
	Source     string    `json:"source" db:"source"`
	BookID     int       `json:"bookId" db:"book_id"`
	Title      string    `json:"title" db:"title"`
	Author     string    `json:"author" db:"author"`
	Category   string    `json:"category" db:"category"`
	Price      float64   `json:"price" db:"price"`
	CoverURL   *string   `json:"coverUrl" db:"cover_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type MonthCount struct {
	Month string `json:"month" db:"month"`
	Count int    `json:"count" db:"count"`
}

type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}

type StatsTotals struct {
	Users   int `json:"users" db:"users"`
	Books   int `json:"books" db:"books"`
	Rentals int `json:"rentals" db:"rentals"`
}

type AdminStats struct {
	Totals         StatsTotals  `json:"totals"`
	UsersByMonth   []MonthCount `json:"usersByMonth"`
	BooksByMonth   []MonthCount `json:"booksByMonth"`
	RentalsByMonth []MonthCount `json:"rentalsByMonth"`
}

type UserStats struct {
	RentalTrend       []MonthCount    `json:"rentalTrend"`
	CategoryBreakdown []CategoryCount `json:"categoryBreakdown"`
}

const (
	EventRented   = "rented"
	EventReturned = "returned"
)

// RentalEvent is published to the rental-events topic after a commit.
type RentalEvent struct {
	Event     string    `json:"event"`
	RentalUid string    `json:"rentalUid"`
	AccountID int       `json:"accountId"`
	BookID    int       `json:"bookId"`
	At        time.Time `json:"at"`
}
