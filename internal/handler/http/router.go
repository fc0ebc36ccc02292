package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/handler/http/middleware"
	"github.com/mikiasgoitom/likeledger/internal/usecase"
)

// APIPrefix is the path every like route is mounted under.
const APIPrefix = "/api/v1"

type Router struct {
	likeHandler   LikeHandlerInterface
	healthHandler *HealthHandler
	jwtService    usecase.JWTService
	siteResolver  contract.ISiteResolver
	corsOrigins   []string
}

func NewRouter(likeHandler LikeHandlerInterface, healthHandler *HealthHandler, jwtService usecase.JWTService, siteResolver contract.ISiteResolver, corsOrigins []string) *Router {
	return &Router{
		likeHandler:   likeHandler,
		healthHandler: healthHandler,
		jwtService:    jwtService,
		siteResolver:  siteResolver,
		corsOrigins:   corsOrigins,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	// Primary keys may contain an escaped "/", so match on the raw path and
	// unescape each parameter after routing.
	router.UseRawPath = true
	router.UnescapePathValues = true

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(r.corsOrigins) == 0 || (len(r.corsOrigins) == 1 && r.corsOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = r.corsOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", r.healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group(APIPrefix)
	v1.Use(middleware.SiteMiddleWare(r.siteResolver))

	likes := v1.Group("/likes")
	{
		likes.GET("/redirect/:typeID/:pk", r.likeHandler.RedirectHandler)

		// Public reads
		likes.GET("/:type/:pk", r.likeHandler.ListHandler)
		likes.GET("/:type/:pk/count", r.likeHandler.CountHandler)
		likes.GET("/:type/:pk/links", r.likeHandler.LinksHandler)
		likes.GET("/:type/:pk/liked", middleware.OptionalAuthMiddleWare(r.jwtService), r.likeHandler.LikedHandler)

		// Toggles (authentication required)
		auth := middleware.AuthMiddleWare(r.jwtService)
		likes.POST("/:type/:pk/like", auth, r.likeHandler.LikeTargetHandler)
		likes.POST("/:type/:pk/unlike", auth, r.likeHandler.UnlikeTargetHandler)
	}
}
