package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/shorturler/domain"
	"github.com/superj80820/shorturler/kit/code"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	httpTransportKit "github.com/superj80820/shorturler/kit/http/transport"
)

var EncodeLinkSearchResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)

type linkSearchRequest struct {
	OriginalURL string
}

func MakeLinkSearchEndpoint(svc domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(linkSearchRequest)
		links, err := svc.Search(ctx, req.OriginalURL)
		if err != nil {
			return nil, err
		}
		if len(links) == 0 {
			return nil, code.CreateErrorCode(http.StatusNotFound)
		}
		res := make([]*linkResponse, len(links))
		for idx, link := range links {
			res[idx] = makeLinkResponse(link)
		}
		return res, nil
	}
}

func DecodeLinkSearchRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	originalURL := r.URL.Query().Get("original_url")
	if originalURL == "" {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidURL)
	}
	return linkSearchRequest{OriginalURL: originalURL}, nil
}
