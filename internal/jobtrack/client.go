package jobtrack

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"organ-annotator/internal/domain"
	"organ-annotator/internal/infra"
)

// Options configures the job-tracking client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client reports job state transitions to the external job-tracking service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// MarkRunning records that processing of the given job has begun. It is
// called before any inference work; a rejection fails the whole message. Job
// identifiers may contain slashes and are placed in the path verbatim.
func (c *Client) MarkRunning(ctx context.Context, jobID string) error {
	endpoint := c.baseURL + "/" + jobID + "/running"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrJobStateUpdate, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrJobStateUpdate, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", domain.ErrJobStateUpdate, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.logger.Debug().Str("job_id", jobID).Msg("jobtrack: job marked running")
	return nil
}
