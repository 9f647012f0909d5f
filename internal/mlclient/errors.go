package mlclient

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("either an image or a text payload must be provided")

// NoAvailableServerError means every candidate failed the liveness probe.
type NoAvailableServerError struct {
	ServerList string
}

func (e *NoAvailableServerError) Error() string {
	return fmt.Sprintf("no machine learning server is available, tried: %s", e.ServerList)
}

// DispatchFailedError means the prediction request could not be delivered to
// an already resolved server.
type DispatchFailedError struct {
	ServerURL string
	Err       error
}

func (e *DispatchFailedError) Error() string {
	return fmt.Sprintf("failed to dispatch prediction request to %s: %s", e.ServerURL, e.Err)
}

func (e *DispatchFailedError) Unwrap() error {
	return e.Err
}

// PredictionRejectedError means the server answered the prediction request
// with an error status.
type PredictionRejectedError struct {
	Entries    string
	StatusCode int
	Status     string
}

func (e *PredictionRejectedError) Error() string {
	return fmt.Sprintf("prediction request %s was rejected with status %d %s", e.Entries, e.StatusCode, e.Status)
}
