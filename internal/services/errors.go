package services

import "fmt"

const (
	MsgValidationFailed = "Message and item details are required."
	MsgNoResponse       = "No response from AI."
)

// ValidationError reports a request missing required fields.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamEmptyResponseError means the generation service answered without usable text.
type UpstreamEmptyResponseError struct{}

func (e *UpstreamEmptyResponseError) Error() string {
	return MsgNoResponse
}

// UpstreamCallError wraps a failed call to the generation service.
type UpstreamCallError struct {
	Err error
}

func (e *UpstreamCallError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamCallError) Unwrap() error {
	return e.Err
}

func newUpstreamCallError(err error) error {
	if err == nil {
		return &UpstreamCallError{Err: fmt.Errorf("generation failed")}
	}
	return &UpstreamCallError{Err: err}
}
