package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/superj80820/shorturler/domain"
	"github.com/superj80820/shorturler/kit/code"
	httpKit "github.com/superj80820/shorturler/kit/http"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	httpTransportKit "github.com/superj80820/shorturler/kit/http/transport"
)

var EncodeLinkUpdateResponse = httpMiddlewareKit.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)

type LinkUpdateRequest struct {
	ShortCode   string     `json:"-"`
	OriginalURL *string    `json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func MakeLinkUpdateEndpoint(svc domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(LinkUpdateRequest)
		link, err := svc.Update(ctx, req.ShortCode, &domain.LinkUpdate{
			OriginalURL: req.OriginalURL,
			ExpiresAt:   req.ExpiresAt,
		}, httpKit.GetUserID(ctx))
		if err != nil {
			return nil, err
		}
		return makeLinkResponse(link), nil
	}
}

func DecodeLinkUpdateRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	shortCode, ok := vars["shortCode"]
	if !ok {
		return nil, errors.New("get short code failed")
	}
	var req LinkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	req.ShortCode = shortCode
	return req, nil
}
