package errs

import (
	"errors"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRentalNotFound     = errors.New("rental not found")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrOutOfStock         = errors.New("out of stock")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrInvalidStock       = errors.New("stock must be a non-negative integer")
	ErrAmbiguousTarget    = errors.New("exactly one of bookId and customBookId must be set")
)
