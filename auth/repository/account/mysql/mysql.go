package mysql

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	ormKit "github.com/superj80820/shorturler/kit/orm"
	utilKit "github.com/superj80820/shorturler/kit/util"
)

type accountEntity struct {
	*domain.Account
}

func (accountEntity) TableName() string {
	return "account"
}

type accountRepo struct {
	orm *ormKit.DB
}

func CreateAccountRepo(orm *ormKit.DB) domain.AccountRepo {
	return &accountRepo{orm: orm}
}

func (a *accountRepo) Create(ctx context.Context, username, password string) (*domain.Account, error) {
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
	createErr := a.orm.WithContext(ctx).Create(&accountEntity{Account: account}).Error
	if mysqlErr, ok := ormKit.ConvertMySQLErr(createErr); ok {
		createErr = mysqlErr
	}
	if errors.Is(createErr, ormKit.ErrDuplicatedKey) {
		return nil, errors.Wrap(domain.ErrAccountExists, "insert account failed")
	} else if createErr != nil {
		return nil, errors.Wrap(createErr, "insert account failed")
	}
	return account, nil
}

func (a *accountRepo) Get(ctx context.Context, userID int64) (*domain.Account, error) {
	var account accountEntity
	err := a.orm.WithContext(ctx).Where("id = ?", userID).First(&account).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(domain.ErrInvalidData, "query account failed")
	} else if err != nil {
		return nil, errors.Wrap(err, "query account failed")
	}
	return account.Account, nil
}

func (a *accountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account accountEntity
	err := a.orm.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(domain.ErrInvalidData, "query account failed")
	} else if err != nil {
		return nil, errors.Wrap(err, "query account failed")
	}
	return account.Account, nil
}
