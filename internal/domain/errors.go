package domain

import "errors"

var (
	ErrMalformedMessage        = errors.New("malformed job message")
	ErrJobStateUpdate          = errors.New("job state update rejected")
	ErrInferenceRequest        = errors.New("inference request failed")
	ErrInferenceResponse       = errors.New("malformed inference response")
	ErrMissingTargetIdentifier = errors.New("digital object missing target identifier")
	ErrPublish                 = errors.New("publish failed")
)
