package domain

import (
	"context"
	"errors"
)

type GetOrCreateBuyerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Service manages the buyer pool.
type Service interface {
	GetOrCreateBuyer(ctx context.Context, req GetOrCreateBuyerRequest) (*Customer, error)
	ListBuyers(ctx context.Context, limit int) ([]Customer, error)
	CountBuyers(ctx context.Context) (int64, error)
}

var (
	ErrInvalidUsername = errors.New("invalid_username")
	ErrNotFound        = errors.New("not_found")
)
