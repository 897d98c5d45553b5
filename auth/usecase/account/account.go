package account

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	"github.com/superj80820/shorturler/kit/code"
	utilKit "github.com/superj80820/shorturler/kit/util"
)

type accountUseCase struct {
	accountRepo domain.AccountRepo
}

func CreateAccountUseCase(accountRepo domain.AccountRepo) (domain.AccountUseCase, error) {
	if accountRepo == nil {
		return nil, errors.New("create use case failed")
	}
	return &accountUseCase{accountRepo: accountRepo}, nil
}

func (a *accountUseCase) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, code.CreateErrorCode(http.StatusBadRequest)
	}

	hashedPassword, err := utilKit.GetBcrypt(password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password failed")
	}

	account, err := a.accountRepo.Create(ctx, username, hashedPassword)
	if errors.Is(err, domain.ErrAccountExists) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.UserExists)
	} else if err != nil {
		return nil, errors.Wrap(err, "create account failed")
	}
	return account, nil
}

func (a *accountUseCase) Get(ctx context.Context, userID int64) (*domain.Account, error) {
	account, err := a.accountRepo.Get(ctx, userID)
	if errors.Is(err, domain.ErrInvalidData) {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}
	return account, nil
}
