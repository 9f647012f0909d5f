package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/haojie06/inference-http/internal/logger"
	"github.com/haojie06/inference-http/internal/mlclient"
	"github.com/haojie06/inference-http/internal/model"
	"github.com/haojie06/inference-http/internal/utils"
)

func EncodeImage(client *mlclient.MLClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.New().String()
		imagePath, cleanup, err := imagePathFromRequest(c)
		if err != nil {
			utils.GinFailedWithMessageAndRequestId(c, 400, requestId, err.Error())
			return
		}
		defer cleanup()

		embedding, err := client.EncodeImage(client.Config.ServerURLs, imagePath, client.Config.ClipModel)
		if err != nil {
			logger.Warnf("request %s encode image failed: %s", requestId, err)
			utils.GinFailedWithMessageAndRequestId(c, utils.PredictionErrorStatus(err), requestId, err.Error())
			return
		}
		c.JSON(200, model.EmbeddingResponse{
			RequestId: requestId,
			Status:    "completed",
			Embedding: embedding,
		})
	}
}

func EncodeText(client *mlclient.MLClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.New().String()
		var req model.EncodeTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}
		if req.Text == "" {
			utils.GinFailedWithMessageAndRequestId(c, 400, requestId, "text is required")
			return
		}

		embedding, err := client.EncodeText(client.Config.ServerURLs, req.Text, client.Config.ClipModel, req.Language)
		if err != nil {
			logger.Warnf("request %s encode text failed: %s", requestId, err)
			utils.GinFailedWithMessageAndRequestId(c, utils.PredictionErrorStatus(err), requestId, err.Error())
			return
		}
		c.JSON(200, model.EmbeddingResponse{
			RequestId: requestId,
			Status:    "completed",
			Embedding: embedding,
		})
	}
}
