package domain

import "time"

// Vocabulary constants shared by every annotation this service emits.
const (
	AnnotationType     = "ods:Annotation"
	BodyType           = "oa:TextualBody"
	SelectorType       = "oa:FragmentSelector"
	SelectorConformsTo = "https://www.w3.org/TR/media-frags/"

	MotivationClassifying = "oa:classifying"
	MotivationCommenting  = "oa:commenting"

	AgentType = "schema:SoftwareApplication"

	handlePrefix = "https://hdl.handle.net/"
)

// timestampLayout renders UTC instants with millisecond precision and a
// literal Z suffix, e.g. 2024-05-01T09:30:00.123Z.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t as an annotation creation timestamp.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Agent identifies the software agent recorded as creator of every
// annotation. It is built once at startup and passed around unchanged.
type Agent struct {
	ID         string `json:"@id"`
	Type       string `json:"@type"`
	Identifier string `json:"schema:identifier"`
	Name       string `json:"schema:name"`
}

// NewAgent builds the provenance agent from the configured machine agent
// handle suffix and display name. An empty handle yields an empty id, which
// the local runner tolerates.
func NewAgent(masID, masName string) Agent {
	id := ""
	if masID != "" {
		id = handlePrefix + masID
	}
	return Agent{ID: id, Type: AgentType, Identifier: id, Name: masName}
}

// Detection is one normalized model result: a bounding box in source image
// pixel coordinates, a class label and a confidence score. Values are carried
// exactly as the model returned them, including boxes that fall outside the
// image bounds.
type Detection struct {
	BoundingBox []float64 `json:"boundingBox"`
	Class       string    `json:"class"`
	Score       float64   `json:"score"`
}

// InferenceResult groups the detections for one image with the pixel
// dimensions the boxes were measured against.
type InferenceResult struct {
	Detections  []Detection
	ImageHeight int
	ImageWidth  int
}

// FragmentSelector pins an annotation to a region of the source image.
type FragmentSelector struct {
	Type        string    `json:"@type"`
	ConformsTo  string    `json:"dcterms:conformsTo"`
	BoundingBox []float64 `json:"ac:boundingBox"`
	ImageWidth  int       `json:"ac:imageWidth"`
	ImageHeight int       `json:"ac:imageHeight"`
}

// AnnotationTarget references the digital object an annotation applies to.
type AnnotationTarget struct {
	ID       string           `json:"ods:ID"`
	Type     string           `json:"ods:type"`
	Selector FragmentSelector `json:"oa:selector"`
}

// AnnotationBody carries the annotation value: a structured Detection for
// classifications, or a plain message string for comments.
type AnnotationBody struct {
	Type       string `json:"ods:type"`
	Value      []any  `json:"oa:value"`
	References string `json:"dcterms:references"`
}

// Annotation is the unit of output: provenance, motivation, target region
// and body.
type Annotation struct {
	Type       string           `json:"rdf:type"`
	Motivation string           `json:"oa:motivation"`
	Creator    Agent            `json:"oa:creator"`
	Created    string           `json:"dcterms:created"`
	Target     AnnotationTarget `json:"oa:target"`
	Body       AnnotationBody   `json:"oa:body"`
}

// AnnotationEvent is the outbound success message: the annotations of one
// job, in detection order, plus the job identifier. The list is never empty;
// a zero-detection run publishes a single comment annotation instead.
type AnnotationEvent struct {
	Annotations []Annotation `json:"annotations"`
	JobID       string       `json:"jobId"`
}

// FailureRecord is published to the failure topic in place of an event.
type FailureRecord struct {
	JobID        string `json:"jobId"`
	ErrorMessage string `json:"errorMessage"`
}
