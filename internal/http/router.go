package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string, log zerolog.Logger, maxMultipartMemory int64) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory
	router.Use(gin.Recovery())
	router.Use(ginlogger.SetLogger(
		ginlogger.WithLogger(func(_ *gin.Context, _ zerolog.Logger) zerolog.Logger {
			return log.With().Str("component", "http").Logger()
		}),
		ginlogger.WithSkipPath([]string{"/healthz"}),
	))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "apikey", "x-client-info"},
		ExposeHeaders:   []string{"Content-Type", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.Register(router, authMiddleware)

	return router
}
