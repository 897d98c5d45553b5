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
	DecodeLinkShortenRequest  = httpTransportKit.DecodeJsonRequest[LinkShortenRequest]
	EncodeLinkShortenResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)
)

type LinkShortenRequest struct {
	OriginalURL string     `json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CustomAlias string     `json:"custom_alias"`
}

func MakeLinkShortenEndpoint(svc domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(LinkShortenRequest)

		var ownerID *int64
		if userID, ok := httpKit.GetOptionalUserID(ctx); ok {
			ownerID = &userID
		}

		link, err := svc.Create(ctx, req.OriginalURL, req.ExpiresAt, req.CustomAlias, ownerID)
		if err != nil {
			return nil, err
		}
		return makeLinkResponse(link), nil
	}
}
