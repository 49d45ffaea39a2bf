package app

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/akurlov/shortly/internal/middleware/compress"
	ginLogger "github.com/akurlov/shortly/internal/middleware/logger"
)

func (a *App) SetupRouter() (*gin.Engine, error) {
	r := gin.New()
	if a.config.ProfileMode {
		pprof.Register(r)
	}

	r.Use(ginLogger.Logger(a.logger.Named("middleware")))
	r.Use(compress.Compress())

	r.GET("/:code", a.RedirectToOriginal)
	r.GET("/ping", a.Ping)

	api := r.Group("/api")
	{
		api.POST("/shorten", a.ShortenURL)
		api.GET("/records", a.GetRecords)
		api.GET("/stats", a.GetStats)
		api.DELETE("/expired", a.DeleteExpired)
	}

	return r, nil
}
