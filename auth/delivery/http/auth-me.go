package http

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/shorturler/domain"
	httpKit "github.com/superj80820/shorturler/kit/http"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	httpTransportKit "github.com/superj80820/shorturler/kit/http/transport"
)

var (
	DecodeAuthMeRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeAuthMeResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)
)

type AuthMeResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func MakeAuthMeEndpoint(svc domain.AccountUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		account, err := svc.Get(ctx, httpKit.GetUserID(ctx))
		if err != nil {
			return nil, err
		}
		return &AuthMeResponse{
			ID:        account.ID,
			Username:  account.Username,
			CreatedAt: account.CreatedAt,
		}, nil
	}
}
