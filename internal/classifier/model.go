package classifier

import (
	"errors"
	"fmt"

	"github.com/edumetric/edumetric/pkg/models"
)

var (
	// ErrModelUnavailable is returned by strategies that cannot serve
	// predictions (e.g. a model file that failed to load).
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrBadVector is returned when the feature vector has the wrong shape.
	ErrBadVector = errors.New("feature vector must have 6 elements")
)

// ModelStrategy is an externally trained classifier for one label dimension.
// PredictRaw consumes the fixed-order feature vector and returns an encoded
// class; Decode turns the encoding back into a label string.
type ModelStrategy interface {
	PredictRaw(features []float64) (int, error)
	Decode(raw int) (string, error)
}

func predictWithModel(model ModelStrategy, vector []float64) (string, error) {
	if len(vector) != models.FeatureVectorSize {
		return "", ErrBadVector
	}

	raw, err := model.PredictRaw(vector)
	if err != nil {
		return "", fmt.Errorf("predict: %w", err)
	}

	label, err := model.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("decode class %d: %w", raw, err)
	}

	return label, nil
}
