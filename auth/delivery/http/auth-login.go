package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/shorturler/domain"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	httpTransportKit "github.com/superj80820/shorturler/kit/http/transport"
)

var (
	DecodeAuthLoginRequest  = httpTransportKit.DecodeJsonRequest[AuthLoginRequest]
	EncodeAuthLoginResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)
)

type AuthLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func MakeAuthLoginEndpoint(svc domain.AuthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AuthLoginRequest)
		account, err := svc.Login(ctx, req.Username, req.Password)
		if err != nil {
			return nil, err
		}
		return &AuthLoginResponse{AccessToken: account.AccessToken, TokenType: "bearer"}, nil
	}
}
