// mlclient dispatches prediction requests to a pool of machine learning
// inference servers, picking a live server before every request.
package mlclient

import (
	"net/http"
	"time"

	"github.com/haojie06/inference-http/internal/logger"
)

const (
	DefaultFacialRecognitionModel = "buffalo_l"
	DefaultClipModel              = "ViT-B-32__openai"
	DefaultMinFaceScore           = 0.7

	DefaultProbeTimeoutSeconds   = 2
	DefaultRequestTimeoutSeconds = 60
)

type MachineLearningConfig struct {
	ServerURLs string `mapstructure:"serverUrls"` // semicolon separated candidate servers, probed in order

	FacialRecognitionModel string `mapstructure:"facialRecognitionModel"`

	MinFaceScore float32 `mapstructure:"minFaceScore"` // faces below this detection score are dropped by the server

	ClipModel string `mapstructure:"clipModel"`

	ProbeTimeoutSeconds int `mapstructure:"probeTimeoutSeconds"`

	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds"`
}

type MLClient struct {
	Config MachineLearningConfig

	probeClient *http.Client

	requestClient *http.Client

	logger *logger.ContextLogger
}

func NewMLClient(config MachineLearningConfig, contextLogger *logger.ContextLogger) *MLClient {
	if config.FacialRecognitionModel == "" {
		config.FacialRecognitionModel = DefaultFacialRecognitionModel
	}
	if config.MinFaceScore == 0 {
		config.MinFaceScore = DefaultMinFaceScore
	}
	if config.ClipModel == "" {
		config.ClipModel = DefaultClipModel
	}
	if config.ProbeTimeoutSeconds <= 0 {
		config.ProbeTimeoutSeconds = DefaultProbeTimeoutSeconds
	}
	if config.RequestTimeoutSeconds <= 0 {
		config.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if contextLogger == nil {
		contextLogger = logger.NewContextLogger()
	}
	return &MLClient{
		Config: config,
		probeClient: &http.Client{
			Timeout: time.Duration(config.ProbeTimeoutSeconds) * time.Second,
		},
		requestClient: &http.Client{
			Timeout: time.Duration(config.RequestTimeoutSeconds) * time.Second,
		},
		logger: contextLogger.With("component", "mlclient"),
	}
}
