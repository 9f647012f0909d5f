package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/haojie06/inference-http/internal/logger"
	"github.com/haojie06/inference-http/internal/mlclient"
	"github.com/haojie06/inference-http/internal/server/handler"
)

func Start(host, port, apiKey string, client *mlclient.MLClient) {
	router := InitRouter(apiKey, client)
	if err := router.Run(host + ":" + port); err != nil {
		panic(err)
	}
}

func PermissionCheckMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestKey := c.GetHeader("API-KEY")
		if requestKey != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid API key",
			})
			return
		}
		c.Next()
	}
}

func InitRouter(apiKey string, client *mlclient.MLClient) *gin.Engine {
	router := gin.New()
	router.Use(ginzap.RecoveryWithZap(logger.ZapLogger, true))
	router.Use(ginzap.Ginzap(logger.ZapLogger, time.RFC3339Nano, true))
	router.Use(cors.Default())
	pprof.Register(router)

	// liveness for the gateway itself, not for the inference servers behind it
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("", PermissionCheckMiddleware(apiKey))
	apiGroup.POST("/detect-faces", handler.DetectFaces(client))
	apiGroup.POST("/encode-image", handler.EncodeImage(client))
	apiGroup.POST("/encode-text", handler.EncodeText(client))
	return router
}
