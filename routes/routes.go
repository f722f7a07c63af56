package routes

import (
	"context"
	"dashboard/auth"
	"dashboard/client"
	"dashboard/config"
	"dashboard/controller"
	"dashboard/database"
	"dashboard/middleware"
	"dashboard/repository"
	"dashboard/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Services is the wired application graph shared by the CLI commands
type Services struct {
	Runtime  *config.ConfigManager
	Returns  service.ReturnsService
	Backtest service.BacktestService
	Refresh  service.RefreshService
	Upload   service.UploadService
	Auth     service.AuthService
}

// Bootstrap connects the stores and builds every service. Redis and Mongo
// are optional. The returned func releases the connections.
func Bootstrap(ctx context.Context, cfg *config.SystemConfigs) (*Services, func(), error) {
	env := cfg.Config
	auth.SecretKey = []byte(env.JwtSecret)

	// --- 1. Stores ---
	sqlStore, err := database.OpenSQL(ctx, env.DbDriver, env.DbDsn)
	if err != nil {
		return nil, nil, err
	}
	if err := sqlStore.InitSchema(ctx); err != nil {
		sqlStore.Close()
		return nil, nil, err
	}
	closers := []func(){func() { sqlStore.Close() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var reportStore service.ReportStore
	if env.RedisUrl != "" {
		redisStore, err := database.InitRedis(ctx, env.RedisUrl)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, using the in-process report cache only")
		} else {
			reportStore = redisStore
		}
	}

	var archive service.BacktestArchive
	if env.MongoUri != "" {
		mongoClient, db, err := database.InitMongoClient(ctx, env.MongoUri, env.MongoDatabase)
		if err != nil {
			log.Warn().Err(err).Msg("MongoDB unavailable, backtest runs will not be archived")
		} else {
			archive = repository.NewBacktestRepository(db)
			closers = append(closers, func() { mongoClient.Disconnect(context.Background()) })
		}
	}

	// --- 2. Repositories ---
	indexRepo := repository.NewIndexRepository(sqlStore)
	portfolioRepo := repository.NewPortfolioRepository(sqlStore)

	// --- 3. Services (Dependency Injection) ---
	runtime := config.NewConfigManager(env.Runtime())
	returnsSvc := service.NewReturnsService(indexRepo, portfolioRepo, runtime, reportStore)

	return &Services{
		Runtime:  runtime,
		Returns:  returnsSvc,
		Backtest: service.NewBacktestService(client.NewCalcClient(env.CalcApiUrl, env.CalcApiKey), archive),
		Refresh:  service.NewRefreshService(client.NewYahooClient(), indexRepo, returnsSvc, env.YahooSymbols),
		Upload:   service.NewUploadService(indexRepo, returnsSvc),
		Auth:     service.NewAuthService(env.AdminUser, env.AdminPasswordHash),
	}, cleanup, nil
}

func SetupRouter(cfg *config.SystemConfigs, svc *Services) *gin.Engine {
	isProduction := cfg.Config.IsProduction()

	r := gin.New()
	r.Use(
		middleware.RecoveryMiddleware,
		middleware.ZerologMiddleware(),
		middleware.CORS(svc.Runtime),
		middleware.RateLimiter(svc.Runtime),
	)

	humaConfig := huma.DefaultConfig("Index Dashboard API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humagin.New(r, humaConfig)

	// --- 4. Routes & Controllers ---
	controller.NewAuthController(svc.Auth, isProduction).RegisterRoutes(api)
	controller.NewReturnsController(svc.Returns, isProduction).RegisterRoutes(api)
	controller.NewPortfolioController(svc.Returns, isProduction).RegisterRoutes(api)
	controller.NewBacktestController(svc.Backtest, isProduction).RegisterRoutes(api)

	group := r.Group("/api")
	{
		controller.NewHealthController().RegisterRoutes(group)
		controller.NewIndexAdminController(svc.Upload, svc.Refresh, isProduction).RegisterRoutes(group)
	}

	return r
}
