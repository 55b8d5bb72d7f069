package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/edumetric/edumetric/internal/logger"
	"github.com/edumetric/edumetric/pkg/models"
)

// LinearModel is a trained multinomial linear classifier exported to JSON.
// PredictRaw picks the class with the highest score; Decode maps class
// indices back onto label strings.
type LinearModel struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
	Labels  []string    `json:"labels"`
}

func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}

	if len(m.Weights) == 0 || len(m.Weights) != len(m.Bias) || len(m.Weights) != len(m.Labels) {
		return nil, fmt.Errorf("model file %s has inconsistent shape", path)
	}
	for _, row := range m.Weights {
		if len(row) != models.FeatureVectorSize {
			return nil, fmt.Errorf("model file %s expects %d features", path, models.FeatureVectorSize)
		}
	}

	return &m, nil
}

func (m *LinearModel) PredictRaw(features []float64) (int, error) {
	if len(features) != models.FeatureVectorSize {
		return 0, ErrBadVector
	}

	best := 0
	bestScore := 0.0
	for class, row := range m.Weights {
		score := m.Bias[class]
		for i, w := range row {
			score += w * features[i]
		}
		if class == 0 || score > bestScore {
			best = class
			bestScore = score
		}
	}

	return best, nil
}

func (m *LinearModel) Decode(raw int) (string, error) {
	if raw < 0 || raw >= len(m.Labels) {
		return "", fmt.Errorf("class %d out of range", raw)
	}
	return m.Labels[raw], nil
}

// LoadModels loads the per-label model files from dir. A missing file is not
// an error: that label simply stays on the rule path. Loaded models are
// wrapped in circuit breakers.
func LoadModels(dir string, maxFailures int, timeout time.Duration) Models {
	var out Models

	load := func(name string) ModelStrategy {
		path := filepath.Join(dir, name+"_model.json")
		model, err := LoadModel(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Warnf("Skipping %s model: %v", name, err)
			}
			return nil
		}

		logger.Infof("Loaded %s model from %s", name, path)
		return NewResilientModel(ResilientModelConfig{
			Name:        name,
			Model:       model,
			MaxFailures: maxFailures,
			Timeout:     timeout,
		})
	}

	out.Performance = load("performance")
	out.Risk = load("risk")
	out.Dropout = load("dropout")
	return out
}
