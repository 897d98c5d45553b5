package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	authDeliveryHTTP "github.com/superj80820/shorturler/auth/delivery/http"
	accountMySQLRepo "github.com/superj80820/shorturler/auth/repository/account/mysql"
	jwtRepo "github.com/superj80820/shorturler/auth/repository/auth/jwt"
	accountUseCaseLib "github.com/superj80820/shorturler/auth/usecase/account"
	authUseCaseLib "github.com/superj80820/shorturler/auth/usecase/auth"
	"github.com/superj80820/shorturler/domain"
	httpKit "github.com/superj80820/shorturler/kit/http"
	httpMiddlewareKit "github.com/superj80820/shorturler/kit/http/middleware"
	loggerKit "github.com/superj80820/shorturler/kit/logger"
	ormKit "github.com/superj80820/shorturler/kit/orm"
	redisKit "github.com/superj80820/shorturler/kit/redis"
	traceKit "github.com/superj80820/shorturler/kit/trace"
	utilKit "github.com/superj80820/shorturler/kit/util"
	linkDeliveryHTTP "github.com/superj80820/shorturler/url/delivery/http"
	linkCacheNoopRepo "github.com/superj80820/shorturler/url/repository/cache/noop"
	linkCacheRedisRepo "github.com/superj80820/shorturler/url/repository/cache/redis"
	linkMySQLRepo "github.com/superj80820/shorturler/url/repository/mysql"
	"github.com/superj80820/shorturler/url/usecase"
	"go.opentelemetry.io/otel/trace"
)

const (
	SYSTEM_NAME  = "system"
	SERVICE_NAME = "shorturler"
)

func main() {
	godotenv.Load()

	var (
		address                  = utilKit.GetEnvString("ADDRESS", ":8000")
		databaseDriver           = utilKit.GetEnvString("DATABASE_DRIVER", "mysql")
		databaseDSN              = utilKit.GetRequireEnvString("DATABASE_DSN")
		redisAddress             = utilKit.GetEnvString("REDIS_ADDRESS", "")
		redisPassword            = utilKit.GetEnvString("REDIS_PASSWORD", "")
		jwtSecretKey             = utilKit.GetRequireEnvString("JWT_SECRET_KEY")
		accessTokenExpireMinutes = utilKit.GetEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
		cacheTTLSeconds          = utilKit.GetEnvInt("CACHE_TTL_SECONDS", 3600)
		rateLimitMaxRequests     = utilKit.GetEnvInt("RATE_LIMIT_MAX_REQUESTS", 100)
		rateLimitExpirySeconds   = utilKit.GetEnvInt("RATE_LIMIT_EXPIRY_SECONDS", 60)
		enableTracer             = utilKit.GetEnvBool("ENABLE_TRACER", false)
		enableMetric             = utilKit.GetEnvBool("ENABLE_METRIC", false)
		env                      = utilKit.GetEnvString("ENV", "development")
	)

	logLevel := loggerKit.InfoLevel
	if env == "development" {
		logLevel = loggerKit.DebugLevel
	}
	logger, err := loggerKit.NewLogger("./go.log", logLevel)
	if err != nil {
		panic(err)
	}

	var ormOption ormKit.Option
	switch databaseDriver {
	case "mysql":
		ormOption = ormKit.UseMySQL(databaseDSN)
	case "postgres":
		ormOption = ormKit.UsePostgres(databaseDSN)
	case "sqlite":
		ormOption = ormKit.UseSQLite(databaseDSN)
	default:
		panic("unknown database driver: " + databaseDriver)
	}
	singletonDB, err := ormKit.CreateDB(ormOption)
	if err != nil {
		panic(err)
	}

	// Without a redis address the service runs cache-less: resolves go
	// straight to the store and rate limiting is off.
	var (
		linkCache domain.LinkCache = linkCacheNoopRepo.CreateLinkCache()
		rateLimit *utilKit.CacheRateLimit
	)
	if redisAddress != "" {
		singletonCache, err := redisKit.CreateCache(redisAddress, redisPassword, 0)
		if err != nil {
			panic(err)
		}
		linkCache = linkCacheRedisRepo.CreateLinkCache(singletonCache)
		rateLimit = utilKit.CreateCacheRateLimit(singletonCache, rateLimitMaxRequests, rateLimitExpirySeconds)
	}

	var tracer trace.Tracer
	if enableTracer {
		tracer, err = traceKit.CreateTracer(context.Background(), SERVICE_NAME)
		if err != nil {
			panic(err)
		}
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	linkRepo := linkMySQLRepo.CreateLinkRepo(singletonDB)
	accountRepo := accountMySQLRepo.CreateAccountRepo(singletonDB)
	authRepo, err := jwtRepo.CreateAuthRepo(jwtSecretKey)
	if err != nil {
		panic(err)
	}

	linkUseCase, err := usecase.CreateLinkUseCase(linkRepo, linkCache, time.Duration(cacheTTLSeconds)*time.Second, logger)
	if err != nil {
		panic(err)
	}
	accountUseCase, err := accountUseCaseLib.CreateAccountUseCase(accountRepo)
	if err != nil {
		panic(err)
	}
	authUseCase, err := authUseCaseLib.CreateAuthUseCase(accountRepo, authRepo, time.Duration(accessTokenExpireMinutes)*time.Minute)
	if err != nil {
		panic(err)
	}

	baseMiddlewares := []endpoint.Middleware{
		httpMiddlewareKit.CreateLoggingMiddleware(logger),
	}
	if rateLimit != nil {
		baseMiddlewares = append(baseMiddlewares, httpMiddlewareKit.CreateRateLimitMiddleware(rateLimit.Pass))
	}
	if enableMetric {
		baseMiddlewares = append(baseMiddlewares, httpMiddlewareKit.CreateMetrics(SYSTEM_NAME, SERVICE_NAME))
	}
	customMiddleware := endpoint.Chain(baseMiddlewares[0], baseMiddlewares[1:]...)
	authMiddleware := httpMiddlewareKit.CreateAuthMiddleware(authUseCase.Verify)
	optionalAuthMiddleware := httpMiddlewareKit.CreateOptionalAuthMiddleware(authUseCase.Verify)

	r := mux.NewRouter()
	options := []httptransport.ServerOption{
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer)),
		httptransport.ServerAfter(httpKit.CustomAfterCtx),
		httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
	}

	linkShortenHandler := httptransport.NewServer(
		customMiddleware(optionalAuthMiddleware(linkDeliveryHTTP.MakeLinkShortenEndpoint(linkUseCase))),
		linkDeliveryHTTP.DecodeLinkShortenRequest,
		linkDeliveryHTTP.EncodeLinkShortenResponse,
		options...,
	)
	linkSearchHandler := httptransport.NewServer(
		customMiddleware(linkDeliveryHTTP.MakeLinkSearchEndpoint(linkUseCase)),
		linkDeliveryHTTP.DecodeLinkSearchRequest,
		linkDeliveryHTTP.EncodeLinkSearchResponse,
		options...,
	)
	linkStatsHandler := httptransport.NewServer(
		customMiddleware(linkDeliveryHTTP.MakeLinkStatsEndpoint(linkUseCase)),
		linkDeliveryHTTP.DecodeLinkStatsRequest,
		linkDeliveryHTTP.EncodeLinkStatsResponse,
		options...,
	)
	linkRedirectHandler := httptransport.NewServer(
		customMiddleware(linkDeliveryHTTP.MakeLinkRedirectEndpoint(linkUseCase)),
		linkDeliveryHTTP.DecodeLinkRedirectRequest,
		linkDeliveryHTTP.EncodeLinkRedirectResponse,
		options...,
	)
	linkUpdateHandler := httptransport.NewServer(
		customMiddleware(authMiddleware(linkDeliveryHTTP.MakeLinkUpdateEndpoint(linkUseCase))),
		linkDeliveryHTTP.DecodeLinkUpdateRequest,
		linkDeliveryHTTP.EncodeLinkUpdateResponse,
		options...,
	)
	linkDeleteHandler := httptransport.NewServer(
		customMiddleware(authMiddleware(linkDeliveryHTTP.MakeLinkDeleteEndpoint(linkUseCase))),
		linkDeliveryHTTP.DecodeLinkDeleteRequest,
		linkDeliveryHTTP.EncodeLinkDeleteResponse,
		options...,
	)
	accountRegisterHandler := httptransport.NewServer(
		customMiddleware(authDeliveryHTTP.MakeAccountRegisterEndpoint(accountUseCase)),
		authDeliveryHTTP.DecodeAccountRegisterRequest,
		authDeliveryHTTP.EncodeAccountRegisterResponse,
		options...,
	)
	authLoginHandler := httptransport.NewServer(
		customMiddleware(authDeliveryHTTP.MakeAuthLoginEndpoint(authUseCase)),
		authDeliveryHTTP.DecodeAuthLoginRequest,
		authDeliveryHTTP.EncodeAuthLoginResponse,
		options...,
	)
	authMeHandler := httptransport.NewServer(
		customMiddleware(authMiddleware(authDeliveryHTTP.MakeAuthMeEndpoint(accountUseCase))),
		authDeliveryHTTP.DecodeAuthMeRequest,
		authDeliveryHTTP.EncodeAuthMeResponse,
		options...,
	)

	r.Methods("POST").Path("/links/shorten").Handler(linkShortenHandler)
	r.Methods("GET").Path("/links/search").Handler(linkSearchHandler)
	r.Methods("GET").Path("/links/{shortCode}/stats").Handler(linkStatsHandler)
	r.Methods("GET").Path("/links/{shortCode}").Handler(linkRedirectHandler)
	r.Methods("PUT").Path("/links/{shortCode}").Handler(linkUpdateHandler)
	r.Methods("DELETE").Path("/links/{shortCode}").Handler(linkDeleteHandler)
	r.Methods("POST").Path("/auth/register").Handler(accountRegisterHandler)
	r.Methods("POST").Path("/auth/token").Handler(authLoginHandler)
	r.Methods("GET").Path("/auth/me").Handler(authMeHandler)
	r.Methods("GET").Path("/").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"message":"URL shortener service"}`))
	})
	if enableMetric {
		r.Handle("/metrics", promhttp.Handler())
	}

	log.Fatal(http.ListenAndServe(address, r))
}
