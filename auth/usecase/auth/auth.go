package auth

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	"github.com/superj80820/shorturler/kit/code"
	utilKit "github.com/superj80820/shorturler/kit/util"
)

type authUseCase struct {
	accountRepo    domain.AccountRepo
	authRepo       domain.AuthRepo
	accessTokenTTL time.Duration
}

func CreateAuthUseCase(accountRepo domain.AccountRepo, authRepo domain.AuthRepo, accessTokenTTL time.Duration) (domain.AuthUseCase, error) {
	if accountRepo == nil || authRepo == nil {
		return nil, errors.New("create use case failed")
	}
	return &authUseCase{
		accountRepo:    accountRepo,
		authRepo:       authRepo,
		accessTokenTTL: accessTokenTTL,
	}, nil
}

func (a *authUseCase) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := a.accountRepo.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrInvalidData) {
		return nil, code.CreateErrorCode(http.StatusUnauthorized)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}

	if err := utilKit.CompareBcrypt([]byte(account.Password), []byte(password)); err != nil {
		return nil, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.PasswordInvalid)
	}

	now := time.Now()
	accessToken, err := a.authRepo.GenerateToken(strconv.FormatInt(account.ID, 10), now, now.Add(a.accessTokenTTL))
	if err != nil {
		return nil, errors.Wrap(err, "generate token failed")
	}
	account.AccessToken = accessToken

	return account, nil
}

func (a *authUseCase) Verify(ctx context.Context, accessToken string) (int64, error) {
	userID, err := a.authRepo.VerifyToken(accessToken)
	if errors.Is(err, domain.ErrExpired) {
		return 0, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.Expired)
	} else if errors.Is(err, domain.ErrInvalidData) {
		return 0, code.CreateErrorCode(http.StatusUnauthorized)
	} else if err != nil {
		return 0, errors.Wrap(err, "verify token failed")
	}
	return userID, nil
}
