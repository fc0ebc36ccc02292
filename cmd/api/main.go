package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	handlerHttp "github.com/mikiasgoitom/likeledger/internal/handler/http"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/config"
	database "github.com/mikiasgoitom/likeledger/internal/infrastructure/database"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/logger"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/metrics"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/registry"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/repository/gormrepo"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/repository/memory"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/repository/redisrepo"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/site"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/validator"
	"github.com/mikiasgoitom/likeledger/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.NewStdLogger(appConfig.GetLogDebug())

	// Likeable types
	typeRegistry := registry.NewTypeRegistry()
	if err := typeRegistry.LoadTypes(appConfig.GetLikeTypes()); err != nil {
		appLogger.Fatalf("Failed to register like types: %v", err)
	}
	for _, desc := range typeRegistry.Types() {
		appLogger.Infof("Registered likeable type %s (id %d)", desc.Tag(), desc.ID)
	}

	likeRepo, ledger, closeLedger := openLedger(appConfig, appLogger)
	defer closeLedger()

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Services
	jwtManager := jwt.NewJWTManager(appConfig.GetJWTSecret())
	jwtService := jwt.NewJWTService(jwtManager)
	uuidGenerator := uuidgen.NewGenerator()
	siteResolver := site.NewHostResolver(appConfig.GetDefaultSiteID(), appConfig.GetSites())
	likeMetrics := metrics.NewLikeMetrics(prometheus.DefaultRegisterer)

	// Dependency Injection: Usecases
	resolver := usecase.NewTargetResolver(typeRegistry)
	likeUsecase := usecase.NewLikeUsecase(likeRepo, resolver, uuidGenerator, appLogger)
	likeUsecase.SetMetrics(likeMetrics)
	displayUsecase := usecase.NewDisplayUsecase(likeUsecase, resolver, typeRegistry, handlerHttp.APIPrefix)

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(
		handlerHttp.NewLikeHandler(likeUsecase, displayUsecase),
		handlerHttp.NewHealthHandler(ledger),
		jwtService,
		siteResolver,
		appConfig.GetCORSAllowOrigins(),
	)
	appRouter.SetupRoutes(router)

	// Start the server
	port := appConfig.GetPort()
	appLogger.Infof("Server running on port %s (%s), ledger %s", port, appConfig.GetAppBaseURL(), appConfig.GetLedgerDriver())
	if err := router.Run(":" + port); err != nil {
		appLogger.Fatalf("Failed to start server: %v", err)
	}
}

// openLedger connects the configured ledger backend. The returned pinger is
// nil for the in-memory ledger.
func openLedger(cfg usecasecontract.IConfigProvider, appLogger usecasecontract.IAppLogger) (contract.ILikeRepository, handlerHttp.Pinger, func()) {
	ctx := context.Background()
	switch cfg.GetLedgerDriver() {
	case "postgres", "mysql":
		db, err := database.NewSQLDatabase(cfg.GetLedgerDriver(), cfg.GetDatabaseDSN())
		if err != nil {
			appLogger.Fatalf("Failed to connect to %s: %v", cfg.GetLedgerDriver(), err)
		}
		repo := gormrepo.NewLikeRepository(db.DB)
		if err := repo.Migrate(); err != nil {
			appLogger.Fatalf("Failed to migrate like table: %v", err)
		}
		return repo, db, db.Close
	case "redis":
		rdb, err := database.NewRedisFromURL(ctx, cfg.GetRedisURL())
		if err != nil {
			appLogger.Fatalf("Failed to connect to Redis: %v", err)
		}
		ping := handlerHttp.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		return redisrepo.NewLikeRepository(rdb), ping, func() { database.CloseRedis(rdb) }
	case "memory":
		appLogger.Warnf("Using the in-memory ledger; likes are lost on restart")
		return memory.NewLikeRepository(), nil, func() {}
	default:
		mongoClient, err := database.NewMongoDBClient(cfg.GetMongoURI())
		if err != nil {
			appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		repo := mongodb.NewLikeRepository(mongoClient.Client.Database(cfg.GetMongoDBName()))
		if err := repo.EnsureIndexes(ctx); err != nil {
			appLogger.Fatalf("Failed to create like indexes: %v", err)
		}
		return repo, mongoClient, mongoClient.Disconnect
	}
}
