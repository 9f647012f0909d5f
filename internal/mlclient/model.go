package mlclient

// ModelTask is the task group key used in the entries form field and in the
// prediction response. The search task runs the CLIP models, so its wire key
// is "clip".
type ModelTask string

const (
	ModelTaskFacialRecognition ModelTask = "facial-recognition"
	ModelTaskSearch            ModelTask = "clip"
)

// ModelType selects the model variant within a task.
type ModelType string

const (
	ModelTypeDetection   ModelType = "detection"
	ModelTypeRecognition ModelType = "recognition"
	ModelTypeVisual      ModelType = "visual"
	ModelTypeTextual     ModelType = "textual"
)

// ModelPayload is the content to run inference on, either an image or a text
// string, never both.
type ModelPayload interface {
	isModelPayload()
}

type ImagePayload struct {
	ImagePath string
}

type TextPayload struct {
	Text string
}

func (ImagePayload) isModelPayload() {}
func (TextPayload) isModelPayload()  {}

type ModelConfig struct {
	ModelName string `json:"modelName"`
}

type FaceDetectionOptions struct {
	MinScore float32 `json:"minScore"`
}

type FaceDetectionConfig struct {
	ModelName string               `json:"modelName"`
	Options   FaceDetectionOptions `json:"options"`
}

type ClipTextualOptions struct {
	Language string `json:"language"`
}

type ClipTextualConfig struct {
	ModelName string              `json:"modelName"`
	Options   *ClipTextualOptions `json:"options,omitempty"`
}

// entries shapes, one per operation

type FacialRecognitionEntry struct {
	Detection   FaceDetectionConfig `json:"detection"`
	Recognition ModelConfig         `json:"recognition"`
}

type FacialRecognitionRequest struct {
	FacialRecognition FacialRecognitionEntry `json:"facial-recognition"`
}

type ClipVisualEntry struct {
	Visual ModelConfig `json:"visual"`
}

type ClipVisualRequest struct {
	Search ClipVisualEntry `json:"clip"`
}

type ClipTextualEntry struct {
	Textual ClipTextualConfig `json:"textual"`
}

type ClipTextualRequest struct {
	Search ClipTextualEntry `json:"clip"`
}

type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type DetectedFace struct {
	BoundingBox BoundingBox `json:"boundingBox"`
	Score       float32     `json:"score"`
	Embedding   []float32   `json:"embedding"`
}

// DetectedFaces is the facial recognition result returned to callers.
type DetectedFaces struct {
	ImageHeight int            `json:"imageHeight"`
	ImageWidth  int            `json:"imageWidth"`
	Faces       []DetectedFace `json:"faces"`
}

// wire responses, task output keys are pointers so that a missing branch can
// be told apart from an empty one
type facialRecognitionResponse struct {
	ImageHeight int             `json:"imageHeight"`
	ImageWidth  int             `json:"imageWidth"`
	Faces       *[]DetectedFace `json:"facial-recognition"`
}

type clipResponse struct {
	Embedding *[]float32 `json:"clip"`
}
