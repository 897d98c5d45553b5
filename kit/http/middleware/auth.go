package middleware

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/kit/code"
	httpKit "github.com/superj80820/shorturler/kit/http"
)

// CreateAuthMiddleware rejects requests without a valid credential. The
// verified user ID is placed on the context for the wrapped endpoint.
func CreateAuthMiddleware(verifyFunc func(ctx context.Context, accessToken string) (userID int64, err error)) endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			token := httpKit.GetToken(ctx)
			if token == "" {
				return nil, code.CreateErrorCode(http.StatusUnauthorized)
			}
			userID, err := verifyFunc(ctx, token)
			if err != nil {
				return nil, errors.Wrap(err, "verify token failed")
			}
			ctx = httpKit.AddUserID(ctx, userID)
			return e(ctx, request)
		}
	}
}

// CreateOptionalAuthMiddleware resolves a credential to an identity when one
// is presented and valid, and otherwise lets the request through as
// anonymous. An invalid token is not an error on this path.
func CreateOptionalAuthMiddleware(verifyFunc func(ctx context.Context, accessToken string) (userID int64, err error)) endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			token := httpKit.GetToken(ctx)
			if token == "" {
				return e(ctx, request)
			}
			userID, err := verifyFunc(ctx, token)
			if err != nil {
				return e(ctx, request)
			}
			ctx = httpKit.AddUserID(ctx, userID)
			return e(ctx, request)
		}
	}
}
