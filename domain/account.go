package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrAccountExists = errors.New("account already exists")
	ErrInvalidData   = errors.New("invalid data")
	ErrExpired       = errors.New("expired")
)

type Account struct {
	ID       int64
	Username string
	Password string

	AccessToken string `gorm:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type AccountRepo interface {
	Create(ctx context.Context, username, password string) (*Account, error)
	Get(ctx context.Context, userID int64) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

type AuthRepo interface {
	GenerateToken(sub string, iat, exp time.Time) (string, error)
	VerifyToken(token string) (userID int64, err error)
}

type AccountUseCase interface {
	Register(ctx context.Context, username, password string) (*Account, error)
	Get(ctx context.Context, userID int64) (*Account, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, username, password string) (*Account, error)
	Verify(ctx context.Context, accessToken string) (userID int64, err error)
}
