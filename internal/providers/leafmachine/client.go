package leafmachine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"organ-annotator/internal/domain"
	"organ-annotator/internal/infra"
)

// Options configures the LeafMachine inference client.
type Options struct {
	Endpoint       string
	Model          string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs synchronous detection calls against the hosted LeafMachine
// plant-organ segmentation service.
type Client struct {
	endpoint   string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

type processRequest struct {
	ImageURL  string `json:"image_url"`
	ModelName string `json:"model_name"`
}

type processResponse struct {
	// Detections stays raw so an absent key and an explicit null remain
	// distinguishable when decoding.
	Detections json.RawMessage `json:"detections"`
	Metadata   processMetadata `json:"metadata"`
}

type processDetection struct {
	BBox       []float64 `json:"bbox"`
	ClassName  string    `json:"class_name"`
	Confidence float64   `json:"confidence"`
}

type processMetadata struct {
	// orig_img_shape lists height, width and optionally channels.
	OrigImgShape []int `json:"orig_img_shape"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = "https://herbaria.idlab.ugent.be/inference/process_image/"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "leafpriority"
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
		endpoint:   endpoint,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Detect submits one image for segmentation and returns the detections in
// service order together with the original image dimensions. An absent
// detections field decodes as an empty result rather than an error; an
// explicit null or non-list value fails the response.
func (c *Client) Detect(ctx context.Context, imageURI string) (domain.InferenceResult, error) {
	if strings.TrimSpace(imageURI) == "" {
		return domain.InferenceResult{}, fmt.Errorf("%w: image uri is empty", domain.ErrInferenceRequest)
	}

	payload := processRequest{ImageURL: imageURI, ModelName: c.model}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.InferenceResult{}, fmt.Errorf("%w: encode request: %v", domain.ErrInferenceRequest, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.InferenceResult{}, fmt.Errorf("%w: build request: %v", domain.ErrInferenceRequest, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.InferenceResult{}, fmt.Errorf("%w: %v", domain.ErrInferenceRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.InferenceResult{}, fmt.Errorf("%w: read response: %v", domain.ErrInferenceRequest, err)
	}
	if resp.StatusCode >= 300 {
		return domain.InferenceResult{}, fmt.Errorf("%w: status %d: %s", domain.ErrInferenceRequest, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded processResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.InferenceResult{}, fmt.Errorf("%w: decode response: %v", domain.ErrInferenceResponse, err)
	}
	shape := decoded.Metadata.OrigImgShape
	if len(shape) < 2 {
		return domain.InferenceResult{}, fmt.Errorf("%w: orig_img_shape has %d entries, want at least 2", domain.ErrInferenceResponse, len(shape))
	}

	var wireDetections []processDetection
	if len(decoded.Detections) > 0 {
		if err := json.Unmarshal(decoded.Detections, &wireDetections); err != nil {
			return domain.InferenceResult{}, fmt.Errorf("%w: decode detections: %v", domain.ErrInferenceResponse, err)
		}
		if wireDetections == nil {
			return domain.InferenceResult{}, fmt.Errorf("%w: detections is null", domain.ErrInferenceResponse)
		}
	}

	detections := make([]domain.Detection, 0, len(wireDetections))
	for _, det := range wireDetections {
		detections = append(detections, domain.Detection{
			BoundingBox: det.BBox,
			Class:       det.ClassName,
			Score:       det.Confidence,
		})
	}

	c.logger.Debug().
		Str("model", c.model).
		Str("image_uri", imageURI).
		Int("detections", len(detections)).
		Msg("leafmachine: processed image")

	return domain.InferenceResult{
		Detections:  detections,
		ImageHeight: shape[0],
		ImageWidth:  shape[1],
	}, nil
}
