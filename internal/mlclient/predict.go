package mlclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/haojie06/inference-http/internal/fileutil"
)

// DetectFaces runs the facial recognition models on the image behind
// imagePath and returns the image dimensions together with the detected
// faces.
func (m *MLClient) DetectFaces(serverURLs, imagePath, modelName string, minScore float32) (*DetectedFaces, error) {
	request := FacialRecognitionRequest{
		FacialRecognition: FacialRecognitionEntry{
			Detection: FaceDetectionConfig{
				ModelName: modelName,
				Options:   FaceDetectionOptions{MinScore: minScore},
			},
			Recognition: ModelConfig{ModelName: modelName},
		},
	}
	response, err := predict[facialRecognitionResponse](m, serverURLs, ImagePayload{ImagePath: imagePath}, request)
	if err != nil {
		return nil, err
	}
	if response.Faces == nil {
		return nil, fmt.Errorf("prediction response is missing the %s output", ModelTaskFacialRecognition)
	}
	return &DetectedFaces{
		ImageHeight: response.ImageHeight,
		ImageWidth:  response.ImageWidth,
		Faces:       *response.Faces,
	}, nil
}

// EncodeImage embeds the image behind imagePath with the visual CLIP model.
func (m *MLClient) EncodeImage(serverURLs, imagePath, modelName string) ([]float32, error) {
	request := ClipVisualRequest{
		Search: ClipVisualEntry{Visual: ModelConfig{ModelName: modelName}},
	}
	response, err := predict[clipResponse](m, serverURLs, ImagePayload{ImagePath: imagePath}, request)
	if err != nil {
		return nil, err
	}
	if response.Embedding == nil {
		return nil, fmt.Errorf("prediction response is missing the %s output", ModelTaskSearch)
	}
	return *response.Embedding, nil
}

// EncodeText embeds text with the textual CLIP model. language is optional
// and omitted from the request when empty.
func (m *MLClient) EncodeText(serverURLs, text, modelName, language string) ([]float32, error) {
	textualConfig := ClipTextualConfig{ModelName: modelName}
	if language != "" {
		textualConfig.Options = &ClipTextualOptions{Language: language}
	}
	request := ClipTextualRequest{
		Search: ClipTextualEntry{Textual: textualConfig},
	}
	response, err := predict[clipResponse](m, serverURLs, TextPayload{Text: text}, request)
	if err != nil {
		return nil, err
	}
	if response.Embedding == nil {
		return nil, fmt.Errorf("prediction response is missing the %s output", ModelTaskSearch)
	}
	return *response.Embedding, nil
}

// predict builds the multipart request for payload, resolves a live server
// and posts the request to it. The payload check happens before any network
// activity.
// 派发失败时不会换一台服务器重试, 是否重试由调用方决定
func predict[R any](m *MLClient, serverURLs string, payload ModelPayload, request interface{}) (result R, err error) {
	entries, err := jsoniter.Marshal(request)
	if err != nil {
		return result, err
	}
	body, contentType, err := buildPredictBody(entries, payload)
	if err != nil {
		return result, err
	}
	serverURL, err := m.resolveServerURL(serverURLs)
	if err != nil {
		return result, err
	}
	httpRequest, err := http.NewRequest(http.MethodPost, predictURL(serverURL), body)
	if err != nil {
		return result, err
	}
	httpRequest.Header.Set("Content-Type", contentType)
	m.logger.Debugf("dispatching prediction request to %s, entries: %s", serverURL, entries)
	response, err := m.requestClient.Do(httpRequest)
	if err != nil {
		return result, &DispatchFailedError{ServerURL: serverURL, Err: err}
	}
	defer response.Body.Close()
	if response.StatusCode >= 400 {
		return result, &PredictionRejectedError{
			Entries:    string(entries),
			StatusCode: response.StatusCode,
			Status:     http.StatusText(response.StatusCode),
		}
	}
	if err := jsoniter.NewDecoder(response.Body).Decode(&result); err != nil {
		return result, err
	}
	return result, nil
}

// buildPredictBody assembles the multipart form: the entries field plus
// exactly one of the image or text fields.
func buildPredictBody(entries []byte, payload ModelPayload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("entries", string(entries)); err != nil {
		return nil, "", err
	}
	switch p := payload.(type) {
	case ImagePayload:
		imageBytes, err := fileutil.ReadFileBytes(p.ImagePath)
		if err != nil {
			return nil, "", err
		}
		part, err := writer.CreateFormFile("image", filepath.Base(p.ImagePath))
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(imageBytes); err != nil {
			return nil, "", err
		}
	case TextPayload:
		if err := writer.WriteField("text", p.Text); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", ErrInvalidInput
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func predictURL(serverURL string) string {
	return strings.TrimSuffix(serverURL, "/") + "/predict"
}
