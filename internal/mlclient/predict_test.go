package mlclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedPredict records what the fake inference server received on /predict.
type capturedPredict struct {
	entries    string
	text       string
	textSent   bool
	imageBytes []byte
	imageName  string
	imageSent  bool
}

// newInferenceServer starts a fake inference server that answers the liveness
// probe on / and serves respond on /predict, recording the multipart fields.
func newInferenceServer(t *testing.T, respond http.HandlerFunc) (*httptest.Server, *capturedPredict) {
	t.Helper()
	captured := &capturedPredict{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(32<<20)) {
			return
		}
		captured.entries = r.FormValue("entries")
		if values, ok := r.MultipartForm.Value["text"]; ok && len(values) > 0 {
			captured.textSent = true
			captured.text = values[0]
		}
		if file, header, err := r.FormFile("image"); err == nil {
			captured.imageSent = true
			captured.imageName = header.Filename
			data, readErr := io.ReadAll(file)
			assert.NoError(t, readErr)
			captured.imageBytes = data
			_ = file.Close()
		}
		respond(w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, captured
}

func writeTestImage(t *testing.T, name string, content []byte) string {
	t.Helper()
	imagePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(imagePath, content, 0o644))
	return imagePath
}

func TestDetectFaces(t *testing.T) {
	server, captured := newInferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imageHeight":100,"imageWidth":200,"facial-recognition":[{"boundingBox":{"x1":10,"y1":20,"x2":110,"y2":120},"score":0.99,"embedding":[0.1,0.2,0.3]}]}`))
	})
	imagePath := writeTestImage(t, "face.jpg", []byte("jpeg-bytes"))

	client := NewMLClient(MachineLearningConfig{}, nil)
	detected, err := client.DetectFaces(server.URL, imagePath, "buffalo_l", 0.7)
	require.NoError(t, err)

	assert.Equal(t, 100, detected.ImageHeight)
	assert.Equal(t, 200, detected.ImageWidth)
	require.Len(t, detected.Faces, 1)
	face := detected.Faces[0]
	assert.Equal(t, BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 120}, face.BoundingBox)
	assert.InDelta(t, 0.99, face.Score, 1e-6)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, face.Embedding)

	// detection and recognition both ride in a single entries document
	assert.JSONEq(t, `{"facial-recognition":{"detection":{"modelName":"buffalo_l","options":{"minScore":0.7}},"recognition":{"modelName":"buffalo_l"}}}`, captured.entries)
	assert.True(t, captured.imageSent)
	assert.Equal(t, "face.jpg", captured.imageName)
	assert.Equal(t, []byte("jpeg-bytes"), captured.imageBytes)
	assert.False(t, captured.textSent)
}

func TestEncodeImage(t *testing.T) {
	server, captured := newInferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clip":[0.5,-0.25,0.125]}`))
	})
	imagePath := writeTestImage(t, "photo.png", []byte("png-bytes"))

	client := NewMLClient(MachineLearningConfig{}, nil)
	embedding, err := client.EncodeImage(server.URL, imagePath, "ViT-B-32__openai")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.5, -0.25, 0.125}, embedding)
	assert.JSONEq(t, `{"clip":{"visual":{"modelName":"ViT-B-32__openai"}}}`, captured.entries)
	assert.True(t, captured.imageSent)
	assert.Equal(t, []byte("png-bytes"), captured.imageBytes)
	assert.False(t, captured.textSent)
}

func TestEncodeText(t *testing.T) {
	server, captured := newInferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clip":[0.1,0.2]}`))
	})

	client := NewMLClient(MachineLearningConfig{}, nil)
	embedding, err := client.EncodeText(server.URL, "sunset over the harbor", "ViT-B-32__openai", "")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2}, embedding)
	assert.JSONEq(t, `{"clip":{"textual":{"modelName":"ViT-B-32__openai"}}}`, captured.entries)
	assert.True(t, captured.textSent)
	assert.Equal(t, "sunset over the harbor", captured.text)
	assert.False(t, captured.imageSent)
}

func TestEncodeTextWithLanguage(t *testing.T) {
	server, captured := newInferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clip":[1]}`))
	})

	client := NewMLClient(MachineLearningConfig{}, nil)
	_, err := client.EncodeText(server.URL, "海辺の夕日", "nllb-clip-base", "ja")
	require.NoError(t, err)

	assert.JSONEq(t, `{"clip":{"textual":{"modelName":"nllb-clip-base","options":{"language":"ja"}}}}`, captured.entries)
}

func TestPredictNilPayloadRejectedBeforeNetwork(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewMLClient(MachineLearningConfig{}, nil)
	_, err := predict[clipResponse](client, server.URL, nil, ClipTextualRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
	// rejected before any probe or dispatch goes out
	assert.EqualValues(t, 0, atomic.LoadInt32(&hits))
}

func TestPredictDispatchesToResolvedServer(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	var predictHits int32
	server, _ := newInferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&predictHits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clip":[0.1]}`))
	})

	client := NewMLClient(MachineLearningConfig{}, nil)
	embedding, err := client.EncodeText(deadURL+";"+server.URL, "query", "ViT-B-32__openai", "")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1}, embedding)
	assert.EqualValues(t, 1, atomic.LoadInt32(&predictHits))
}

func TestPredictRejectedByServer(t *testing.T) {
	server, _ := newInferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model failed to load", http.StatusInternalServerError)
	})

	client := NewMLClient(MachineLearningConfig{}, nil)
	_, err := client.EncodeText(server.URL, "query", "ViT-B-32__openai", "")
	require.Error(t, err)

	var rejected *PredictionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusInternalServerError, rejected.StatusCode)
	assert.Equal(t, "Internal Server Error", rejected.Status)
	// the serialized request rides along for diagnosis
	assert.Contains(t, rejected.Entries, "ViT-B-32__openai")
	assert.Contains(t, err.Error(), "500")
}

func TestPredictDispatchFailed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		// kill the connection mid-request so the dispatch itself fails
		hijacker, ok := w.(http.Hijacker)
		if !assert.True(t, ok) {
			return
		}
		conn, _, err := hijacker.Hijack()
		if !assert.NoError(t, err) {
			return
		}
		_ = conn.Close()
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewMLClient(MachineLearningConfig{}, nil)
	_, err := client.EncodeText(server.URL, "query", "ViT-B-32__openai", "")
	require.Error(t, err)

	var dispatchFailed *DispatchFailedError
	require.ErrorAs(t, err, &dispatchFailed)
	// the error names the server that was actually picked
	assert.Equal(t, server.URL, dispatchFailed.ServerURL)
	assert.Contains(t, err.Error(), server.URL)
}

func TestPredictResponseMissingTaskOutput(t *testing.T) {
	server, _ := newInferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imageHeight":100,"imageWidth":200}`))
	})
	imagePath := writeTestImage(t, "face.jpg", []byte("jpeg-bytes"))

	client := NewMLClient(MachineLearningConfig{}, nil)
	_, err := client.DetectFaces(server.URL, imagePath, "buffalo_l", 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "facial-recognition")
}

func TestPredictMalformedResponse(t *testing.T) {
	server, _ := newInferenceServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	})

	client := NewMLClient(MachineLearningConfig{}, nil)
	_, err := client.EncodeText(server.URL, "query", "ViT-B-32__openai", "")
	require.Error(t, err)
}

func TestDetectFacesUnreadableImage(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewMLClient(MachineLearningConfig{}, nil)
	_, err := client.DetectFaces(server.URL, filepath.Join(t.TempDir(), "missing.jpg"), "buffalo_l", 0.7)
	require.Error(t, err)
	assert.EqualValues(t, 0, atomic.LoadInt32(&hits))
}

func TestPredictURL(t *testing.T) {
	assert.Equal(t, "http://ml:3003/predict", predictURL("http://ml:3003"))
	assert.Equal(t, "http://ml:3003/predict", predictURL("http://ml:3003/"))
}
