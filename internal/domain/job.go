package domain

// JobStatus enumerates the lifecycle states of one annotation job.
type JobStatus string

const (
	JobStatusReceived  JobStatus = "received"
	JobStatusRunning   JobStatus = "running"
	JobStatusPublished JobStatus = "published"
	JobStatusFailed    JobStatus = "failed"
)
