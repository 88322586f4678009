package annotation

import (
	"fmt"

	"organ-annotator/internal/domain"
)

// NoComponentsMessage is the comment body published when the model reports
// zero detections for an image.
const NoComponentsMessage = "Leafpriority model found no plant components in this image"

// MapDetection turns one detection into a classifying annotation against the
// digital object. The detection is embedded in the body verbatim and the
// model reference is recorded alongside it.
func MapDetection(agent domain.Agent, created string, det domain.Detection, selector domain.FragmentSelector, targetID, targetType, modelRef string) (domain.Annotation, error) {
	if err := checkTarget(targetID, targetType); err != nil {
		return domain.Annotation{}, err
	}
	return domain.Annotation{
		Type:       domain.AnnotationType,
		Motivation: domain.MotivationClassifying,
		Creator:    agent,
		Created:    created,
		Target: domain.AnnotationTarget{
			ID:       targetID,
			Type:     targetType,
			Selector: selector,
		},
		Body: domain.AnnotationBody{
			Type:       domain.BodyType,
			Value:      []any{det},
			References: modelRef,
		},
	}, nil
}

// MapComment turns a free-text message into a commenting annotation with an
// empty reference, used for the zero-detection fallback.
func MapComment(agent domain.Agent, created, message string, selector domain.FragmentSelector, targetID, targetType string) (domain.Annotation, error) {
	if err := checkTarget(targetID, targetType); err != nil {
		return domain.Annotation{}, err
	}
	return domain.Annotation{
		Type:       domain.AnnotationType,
		Motivation: domain.MotivationCommenting,
		Creator:    agent,
		Created:    created,
		Target: domain.AnnotationTarget{
			ID:       targetID,
			Type:     targetType,
			Selector: selector,
		},
		Body: domain.AnnotationBody{
			Type:       domain.BodyType,
			Value:      []any{message},
			References: "",
		},
	}, nil
}

func checkTarget(targetID, targetType string) error {
	if targetID == "" {
		return fmt.Errorf("%w: ods:ID", domain.ErrMissingTargetIdentifier)
	}
	if targetType == "" {
		return fmt.Errorf("%w: ods:type", domain.ErrMissingTargetIdentifier)
	}
	return nil
}
