package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	utilKit "github.com/superj80820/shorturler/kit/util"
)

type accountRepo struct {
	lock       sync.Mutex
	byID       map[int64]*domain.Account
	byUsername map[string]*domain.Account
}

func CreateAccountRepo() domain.AccountRepo {
	return &accountRepo{
		byID:       make(map[int64]*domain.Account),
		byUsername: make(map[string]*domain.Account),
	}
}

func (a *accountRepo) Create(ctx context.Context, username, password string) (*domain.Account, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if _, ok := a.byUsername[username]; ok {
		return nil, errors.Wrap(domain.ErrAccountExists, "insert account failed")
	}
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "generate unique id failed")
	}
	account := &domain.Account{
		ID:        uniqueIDGenerate.Generate().GetInt64(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	a.byID[account.ID] = account
	a.byUsername[account.Username] = account
	cloned := *account
	return &cloned, nil
}

func (a *accountRepo) Get(ctx context.Context, userID int64) (*domain.Account, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	account, ok := a.byID[userID]
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "query account failed")
	}
	cloned := *account
	return &cloned, nil
}

func (a *accountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	account, ok := a.byUsername[username]
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "query account failed")
	}
	cloned := *account
	return &cloned, nil
}
