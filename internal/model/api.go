package model

import "github.com/haojie06/inference-http/internal/mlclient"

type EncodeTextRequest struct {
	Text string `json:"text"`

	Language string `json:"language"`
}

type DetectFacesResponse struct {
	RequestId string `json:"request_id"`

	Status string `json:"status"` // completed, failed

	ImageHeight int `json:"image_height"`

	ImageWidth int `json:"image_width"`

	Faces []mlclient.DetectedFace `json:"faces"`
}

type EmbeddingResponse struct {
	RequestId string `json:"request_id"`

	Status string `json:"status"`

	Embedding []float32 `json:"embedding"`
}

type ErrorResponse struct {
	RequestId string `json:"request_id,omitempty"`

	Status string `json:"status"`

	Message string `json:"message"`
}
