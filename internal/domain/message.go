package domain

import (
	"encoding/json"
	"fmt"
)

// DigitalObject is the annotation target carried by a job message. Messages
// may carry many more fields; these three are the only ones this service
// reads, and unknown fields are ignored.
type DigitalObject struct {
	ID        string `json:"ods:ID"`
	Type      string `json:"ods:type"`
	AccessURI string `json:"ac:accessURI"`
}

// JobRequest is the inbound queue message: a job identifier and the digital
// object to annotate.
type JobRequest struct {
	JobID  string        `json:"jobId"`
	Object DigitalObject `json:"object"`
}

// DecodeJobRequest parses one inbound message. The job id is the only hard
// envelope requirement; object fields are validated by the stages that
// consume them so their failures can be reported against the job. On error
// the partially decoded request is returned alongside, letting callers
// address a failure record when at least the job id survived decoding.
func DecodeJobRequest(raw []byte) (JobRequest, error) {
	var req JobRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if req.JobID == "" {
		return req, fmt.Errorf("%w: missing jobId", ErrMalformedMessage)
	}
	return req, nil
}
