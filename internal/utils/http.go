package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haojie06/inference-http/internal/mlclient"
	"github.com/haojie06/inference-http/internal/model"
)

func GinFailedWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, model.ErrorResponse{
		Status:  "failed",
		Message: message,
	})
}

func GinFailedWithMessageAndRequestId(c *gin.Context, status int, requestId string, message string) {
	c.JSON(status, model.ErrorResponse{
		RequestId: requestId,
		Status:    "failed",
		Message:   message,
	})
}

// PredictionErrorStatus maps a prediction error to the status the gateway reports.
// A rejection keeps the status the inference server answered with.
func PredictionErrorStatus(err error) int {
	var noServer *mlclient.NoAvailableServerError
	var dispatchFailed *mlclient.DispatchFailedError
	var rejected *mlclient.PredictionRejectedError
	switch {
	case errors.Is(err, mlclient.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &noServer):
		return http.StatusServiceUnavailable
	case errors.As(err, &dispatchFailed):
		return http.StatusBadGateway
	case errors.As(err, &rejected):
		return rejected.StatusCode
	default:
		return http.StatusInternalServerError
	}
}
