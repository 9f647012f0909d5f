package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// imagePathFromRequest accepts the image either as a multipart upload or as an
// imagePath form value naming a file the gateway host can already read.
// An upload is spooled to a temporary file, cleanup removes it again.
func imagePathFromRequest(c *gin.Context) (string, func(), error) {
	noop := func() {}
	file, err := c.FormFile("image")
	if err == nil {
		tempPath := filepath.Join(os.TempDir(), "inference-"+uuid.New().String()+filepath.Ext(file.Filename))
		if saveErr := c.SaveUploadedFile(file, tempPath); saveErr != nil {
			return "", noop, saveErr
		}
		return tempPath, func() { _ = os.Remove(tempPath) }, nil
	}
	if imagePath := c.PostForm("imagePath"); imagePath != "" {
		return imagePath, noop, nil
	}
	if errors.Is(err, http.ErrMissingFile) {
		return "", noop, errors.New("an image upload or an imagePath form value is required")
	}
	return "", noop, err
}
