package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/haojie06/inference-http/internal/logger"
	"github.com/haojie06/inference-http/internal/mlclient"
	"github.com/haojie06/inference-http/internal/model"
	"github.com/haojie06/inference-http/internal/utils"
)

func DetectFaces(client *mlclient.MLClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.New().String()
		imagePath, cleanup, err := imagePathFromRequest(c)
		if err != nil {
			utils.GinFailedWithMessageAndRequestId(c, 400, requestId, err.Error())
			return
		}
		defer cleanup()

		minScore := client.Config.MinFaceScore
		if value := c.PostForm("minScore"); value != "" {
			parsed, parseErr := strconv.ParseFloat(value, 32)
			if parseErr != nil {
				utils.GinFailedWithMessageAndRequestId(c, 400, requestId, "minScore must be a number")
				return
			}
			minScore = float32(parsed)
		}

		detected, err := client.DetectFaces(client.Config.ServerURLs, imagePath, client.Config.FacialRecognitionModel, minScore)
		if err != nil {
			logger.Warnf("request %s detect faces failed: %s", requestId, err)
			utils.GinFailedWithMessageAndRequestId(c, utils.PredictionErrorStatus(err), requestId, err.Error())
			return
		}
		logger.Infof("request %s detected %d faces", requestId, len(detected.Faces))
		c.JSON(200, model.DetectFacesResponse{
			RequestId:   requestId,
			Status:      "completed",
			ImageHeight: detected.ImageHeight,
			ImageWidth:  detected.ImageWidth,
			Faces:       detected.Faces,
		})
	}
}
