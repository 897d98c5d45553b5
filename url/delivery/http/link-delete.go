package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	httpKit "github.com/superj80820/shorturler/kit/http"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	httpTransportKit "github.com/superj80820/shorturler/kit/http/transport"
)

var EncodeLinkDeleteResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)

type linkDeleteRequest struct {
	ShortCode string
}

func MakeLinkDeleteEndpoint(svc domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(linkDeleteRequest)
		link, err := svc.Delete(ctx, req.ShortCode, httpKit.GetUserID(ctx))
		if err != nil {
			return nil, err
		}
		return makeLinkResponse(link), nil
	}
}

func DecodeLinkDeleteRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	shortCode, ok := vars["shortCode"]
	if !ok {
		return nil, errors.New("get short code failed")
	}
	return linkDeleteRequest{ShortCode: shortCode}, nil
}
