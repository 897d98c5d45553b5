package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	authDeliveryHTTP "github.com/superj80820/shorturler/auth/delivery/http"
	accountMemoryRepo "github.com/superj80820/shorturler/auth/repository/account/memory"
	jwtRepo "github.com/superj80820/shorturler/auth/repository/auth/jwt"
	accountUseCaseLib "github.com/superj80820/shorturler/auth/usecase/account"
	authUseCaseLib "github.com/superj80820/shorturler/auth/usecase/auth"
	httpKit "github.com/superj80820/shorturler/kit/http"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	loggerKit "github.com/superj80820/shorturler/kit/logger"
	traceKit "github.com/superj80820/shorturler/kit/trace"
	cacheMemoryRepo "github.com/superj80820/shorturler/url/repository/cache/memory"
	memoryRepo "github.com/superj80820/shorturler/url/repository/memory"
	"github.com/superj80820/shorturler/url/usecase"
)

func createTestServer(t *testing.T) *httptest.Server {
	linkRepo := memoryRepo.CreateLinkRepo()
	linkCache := cacheMemoryRepo.CreateLinkCache()
	accountRepo := accountMemoryRepo.CreateAccountRepo()
	authRepo, err := jwtRepo.CreateAuthRepo("test-secret")
	assert.Nil(t, err)

	linkUseCase, err := usecase.CreateLinkUseCase(linkRepo, linkCache, time.Hour, loggerKit.NewNopLogger())
	assert.Nil(t, err)
	accountUseCase, err := accountUseCaseLib.CreateAccountUseCase(accountRepo)
	assert.Nil(t, err)
	authUseCase, err := authUseCaseLib.CreateAuthUseCase(accountRepo, authRepo, 30*time.Minute)
	assert.Nil(t, err)

	authMiddleware := httpMiddlewareKit.CreateAuthMiddleware(authUseCase.Verify)
	optionalAuthMiddleware := httpMiddlewareKit.CreateOptionalAuthMiddleware(authUseCase.Verify)

	r := mux.NewRouter()
	options := []httptransport.ServerOption{
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(traceKit.CreateNoOpTracer())),
		httptransport.ServerAfter(httpKit.CustomAfterCtx),
		httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
	}

	r.Methods("POST").Path("/links/shorten").Handler(httptransport.NewServer(
		optionalAuthMiddleware(MakeLinkShortenEndpoint(linkUseCase)),
		DecodeLinkShortenRequest,
		EncodeLinkShortenResponse,
		options...,
	))
	r.Methods("GET").Path("/links/search").Handler(httptransport.NewServer(
		MakeLinkSearchEndpoint(linkUseCase),
		DecodeLinkSearchRequest,
		EncodeLinkSearchResponse,
		options...,
	))
	r.Methods("GET").Path("/links/{shortCode}/stats").Handler(httptransport.NewServer(
		MakeLinkStatsEndpoint(linkUseCase),
		DecodeLinkStatsRequest,
		EncodeLinkStatsResponse,
		options...,
	))
	r.Methods("GET").Path("/links/{shortCode}").Handler(httptransport.NewServer(
		MakeLinkRedirectEndpoint(linkUseCase),
		DecodeLinkRedirectRequest,
		EncodeLinkRedirectResponse,
		options...,
	))
	r.Methods("PUT").Path("/links/{shortCode}").Handler(httptransport.NewServer(
		authMiddleware(MakeLinkUpdateEndpoint(linkUseCase)),
		DecodeLinkUpdateRequest,
		EncodeLinkUpdateResponse,
		options...,
	))
	r.Methods("DELETE").Path("/links/{shortCode}").Handler(httptransport.NewServer(
		authMiddleware(MakeLinkDeleteEndpoint(linkUseCase)),
		DecodeLinkDeleteRequest,
		EncodeLinkDeleteResponse,
		options...,
	))
	r.Methods("POST").Path("/auth/register").Handler(httptransport.NewServer(
		authDeliveryHTTP.MakeAccountRegisterEndpoint(accountUseCase),
		authDeliveryHTTP.DecodeAccountRegisterRequest,
		authDeliveryHTTP.EncodeAccountRegisterResponse,
		options...,
	))
	r.Methods("POST").Path("/auth/token").Handler(httptransport.NewServer(
		authDeliveryHTTP.MakeAuthLoginEndpoint(authUseCase),
		authDeliveryHTTP.DecodeAuthLoginRequest,
		authDeliveryHTTP.EncodeAuthLoginResponse,
		options...,
	))
	r.Methods("GET").Path("/auth/me").Handler(httptransport.NewServer(
		authMiddleware(authDeliveryHTTP.MakeAuthMeEndpoint(accountUseCase)),
		authDeliveryHTTP.DecodeAuthMeRequest,
		authDeliveryHTTP.EncodeAuthMeResponse,
		options...,
	))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.Nil(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	assert.Nil(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := client.Do(req)
	assert.Nil(t, err)
	return res
}

func decodeJSONBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var payload T
	assert.Nil(t, json.NewDecoder(res.Body).Decode(&payload))
	return payload
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func registerAndLogin(t *testing.T, server *httptest.Server, username string) string {
	res := doJSON(t, server.Client(), "POST", server.URL+"/auth/register", "", authDeliveryHTTP.AccountRegisterRequest{
		Username: username,
		Password: "password",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, server.Client(), "POST", server.URL+"/auth/token", "", authDeliveryHTTP.AuthLoginRequest{
		Username: username,
		Password: "password",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	login := decodeJSONBody[authDeliveryHTTP.AuthLoginResponse](t, res)
	assert.Equal(t, "bearer", login.TokenType)
	return login.AccessToken
}

func TestShortenAndRedirect(t *testing.T) {
	server := createTestServer(t)
	client := noRedirectClient()

	res := doJSON(t, server.Client(), "POST", server.URL+"/links/shorten", "", LinkShortenRequest{
		OriginalURL: "https://example.com/page",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	link := decodeJSONBody[linkResponse](t, res)
	assert.Len(t, link.ShortCode, 9)

	res = doJSON(t, client, "GET", server.URL+"/links/"+link.ShortCode, "", nil)
	defer res.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, res.StatusCode)
	assert.Equal(t, "https://example.com/page", res.Header.Get("Location"))
}

func TestRedirectUnknownShortCode(t *testing.T) {
	server := createTestServer(t)

	res := doJSON(t, noRedirectClient(), "GET", server.URL+"/links/hseZZZZZZ", "", nil)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRedirectExpiredLink(t *testing.T) {
	server := createTestServer(t)
	expiresAt := time.Now().Add(-time.Minute)

	res := doJSON(t, server.Client(), "POST", server.URL+"/links/shorten", "", LinkShortenRequest{
		OriginalURL: "https://example.com",
		ExpiresAt:   &expiresAt,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	link := decodeJSONBody[linkResponse](t, res)

	res = doJSON(t, noRedirectClient(), "GET", server.URL+"/links/"+link.ShortCode, "", nil)
	defer res.Body.Close()
	assert.Equal(t, http.StatusGone, res.StatusCode)
}

func TestShortenDuplicateCustomAlias(t *testing.T) {
	server := createTestServer(t)

	res := doJSON(t, server.Client(), "POST", server.URL+"/links/shorten", "", LinkShortenRequest{
		OriginalURL: "https://example.com",
		CustomAlias: "my-alias",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, server.Client(), "POST", server.URL+"/links/shorten", "", LinkShortenRequest{
		OriginalURL: "https://example.org",
		CustomAlias: "my-alias",
	})
	defer res.Body.Close()
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestUpdateRequiresAuth(t *testing.T) {
	server := createTestServer(t)
	newURL := "https://example.com/moved"

	res := doJSON(t, server.Client(), "PUT", server.URL+"/links/hseAAAAAA", "", LinkUpdateRequest{OriginalURL: &newURL})
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestUpdateOwnershipOverHTTP(t *testing.T) {
	server := createTestServer(t)
	ownerToken := registerAndLogin(t, server, "owner")
	otherToken := registerAndLogin(t, server, "other")
	newURL := "https://example.com/moved"

	res := doJSON(t, server.Client(), "POST", server.URL+"/links/shorten", ownerToken, LinkShortenRequest{
		OriginalURL: "https://example.com",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	link := decodeJSONBody[linkResponse](t, res)
	assert.NotNil(t, link.OwnerID)

	res = doJSON(t, server.Client(), "PUT", server.URL+"/links/"+link.ShortCode, otherToken, LinkUpdateRequest{OriginalURL: &newURL})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, server.Client(), "PUT", server.URL+"/links/"+link.ShortCode, ownerToken, LinkUpdateRequest{OriginalURL: &newURL})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	updated := decodeJSONBody[linkResponse](t, res)
	assert.Equal(t, newURL, updated.OriginalURL)

	redirectRes := doJSON(t, noRedirectClient(), "GET", server.URL+"/links/"+link.ShortCode, "", nil)
	defer redirectRes.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, redirectRes.StatusCode)
	assert.Equal(t, newURL, redirectRes.Header.Get("Location"))
}

func TestDeleteOverHTTP(t *testing.T) {
	server := createTestServer(t)
	ownerToken := registerAndLogin(t, server, "owner")

	res := doJSON(t, server.Client(), "POST", server.URL+"/links/shorten", ownerToken, LinkShortenRequest{
		OriginalURL: "https://example.com",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	link := decodeJSONBody[linkResponse](t, res)

	res = doJSON(t, server.Client(), "DELETE", server.URL+"/links/"+link.ShortCode, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, noRedirectClient(), "GET", server.URL+"/links/"+link.ShortCode, "", nil)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSearchOverHTTP(t *testing.T) {
	server := createTestServer(t)

	res := doJSON(t, server.Client(), "GET", server.URL+"/links/search?original_url="+"https%3A%2F%2Fexample.com", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, server.Client(), "POST", server.URL+"/links/shorten", "", LinkShortenRequest{
		OriginalURL: "https://example.com",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res = doJSON(t, server.Client(), "GET", server.URL+"/links/search?original_url="+"https%3A%2F%2Fexample.com", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	links := decodeJSONBody[[]linkResponse](t, res)
	assert.Len(t, links, 1)
}

func TestStatsOverHTTP(t *testing.T) {
	server := createTestServer(t)
	client := noRedirectClient()

	res := doJSON(t, server.Client(), "POST", server.URL+"/links/shorten", "", LinkShortenRequest{
		OriginalURL: "https://example.com",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	link := decodeJSONBody[linkResponse](t, res)

	for i := 0; i < 2; i++ {
		redirectRes := doJSON(t, client, "GET", server.URL+"/links/"+link.ShortCode, "", nil)
		assert.Equal(t, http.StatusTemporaryRedirect, redirectRes.StatusCode)
		redirectRes.Body.Close()
	}

	res = doJSON(t, server.Client(), "GET", fmt.Sprintf("%s/links/%s/stats", server.URL, link.ShortCode), "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	stats := decodeJSONBody[linkResponse](t, res)
	assert.Equal(t, int64(2), stats.RedirectCount)
}

func TestAuthMeOverHTTP(t *testing.T) {
	server := createTestServer(t)
	token := registerAndLogin(t, server, "york")

	res := doJSON(t, server.Client(), "GET", server.URL+"/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	me := decodeJSONBody[authDeliveryHTTP.AuthMeResponse](t, res)
	assert.Equal(t, "york", me.Username)

	res = doJSON(t, server.Client(), "GET", server.URL+"/auth/me", "not-a-token", nil)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
