package annotation

import "organ-annotator/internal/domain"

// AssembleEvent groups the annotations of one job into the outbound event,
// preserving their order.
func AssembleEvent(annotations []domain.Annotation, jobID string) domain.AnnotationEvent {
	return domain.AnnotationEvent{Annotations: annotations, JobID: jobID}
}
