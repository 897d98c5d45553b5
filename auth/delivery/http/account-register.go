package http

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/shorturler/domain"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	httpTransportKit "github.com/superj80820/shorturler/kit/http/transport"
)

var (
	DecodeAccountRegisterRequest  = httpTransportKit.DecodeJsonRequest[AccountRegisterRequest]
	EncodeAccountRegisterResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)
)

type AccountRegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccountRegisterResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func MakeAccountRegisterEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AccountRegisterRequest)
		account, err := svc.Register(ctx, req.Username, req.Password)
		if err != nil {
			return nil, err
		}
		return &AccountRegisterResponse{
			ID:        account.ID,
			Username:  account.Username,
			CreatedAt: account.CreatedAt,
		}, nil
	}
}
