package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	httpTransportKit "github.com/superj80820/shorturler/kit/http/transport"
)

var EncodeLinkStatsResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)

type linkStatsRequest struct {
	ShortCode string
}

func MakeLinkStatsEndpoint(svc domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(linkStatsRequest)
		link, err := svc.Stats(ctx, req.ShortCode)
		if err != nil {
			return nil, err
		}
		return makeLinkResponse(link), nil
	}
}

func DecodeLinkStatsRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	shortCode, ok := vars["shortCode"]
	if !ok {
		return nil, errors.New("get short code failed")
	}
	return linkStatsRequest{ShortCode: shortCode}, nil
}
