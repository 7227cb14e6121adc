package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter Ginルーターを構築する
func SetupRouter(allowOrigins []string, appHandler *AppHandler, mapHandler *MapHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", appHandler.Home)
	r.GET("/members", appHandler.Members)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", appHandler.Health)
		api.GET("/assets/status", mapHandler.AssetStatus)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", mapHandler.CreateSession)
			sessions.GET("/:id", mapHandler.GetSession)
			sessions.POST("/:id/focus/region", mapHandler.FocusRegion)
			sessions.POST("/:id/focus/zip", mapHandler.FocusZip)
			sessions.POST("/:id/reset", mapHandler.Reset)
		}

		api.GET("/regions/search", mapHandler.SearchRegion)
		api.GET("/regions/at", mapHandler.RegionAt)
		api.GET("/regions/bbox", mapHandler.RegionsInBounds)
		api.GET("/zips/:zip", mapHandler.LookupZip)
		api.POST("/centroid", mapHandler.Centroid)
	}

	return r
}
