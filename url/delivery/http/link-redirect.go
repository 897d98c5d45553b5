package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
)

type linkRedirectRequest struct {
	ShortCode string
}

type linkRedirectResponse struct {
	OriginalURL string
}

func MakeLinkRedirectEndpoint(svc domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(linkRedirectRequest)
		originalURL, err := svc.Resolve(ctx, req.ShortCode)
		if err != nil {
			return nil, err
		}
		return linkRedirectResponse{OriginalURL: originalURL}, nil
	}
}

func DecodeLinkRedirectRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	shortCode, ok := vars["shortCode"]
	if !ok {
		return nil, errors.New("get short code failed")
	}
	return linkRedirectRequest{ShortCode: shortCode}, nil
}

// EncodeLinkRedirectResponse answers 307 so clients re-resolve every time
// and redirect counting stays accurate. A permanent redirect would let
// intermediaries cache the hop and starve the counter.
func EncodeLinkRedirectResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	res := response.(linkRedirectResponse)
	w.Header().Set("Location", res.OriginalURL)
	w.WriteHeader(http.StatusTemporaryRedirect)
	return nil
}
