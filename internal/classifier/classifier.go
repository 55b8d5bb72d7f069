package classifier

import (
	"strings"

	"github.com/edumetric/edumetric/internal/logger"
	"github.com/edumetric/edumetric/pkg/models"
)

// Config holds the label thresholds. Zero values fall back to the canonical
// cutoffs used across all report variants.
type Config struct {
	PerfHigh   float64
	PerfMedium float64

	RiskAttHigh    float64
	RiskPerfHigh   float64
	RiskAttMedium  float64
	RiskPerfMedium float64

	DropAttHigh    float64
	DropPerfHigh   float64
	DropAttMedium  float64
	DropPerfMedium float64

	Models Models
}

// Models are optional externally trained per-label strategies. A nil entry
// means the rule path decides that label.
type Models struct {
	Performance ModelStrategy
	Risk        ModelStrategy
	Dropout     ModelStrategy
}

type Classifier struct {
	config Config
}

func New(cfg Config) *Classifier {
	if cfg.PerfHigh == 0 {
		cfg.PerfHigh = 80.0
	}
	if cfg.PerfMedium == 0 {
		cfg.PerfMedium = 60.0
	}
	if cfg.RiskAttHigh == 0 {
		cfg.RiskAttHigh = 60.0
	}
	if cfg.RiskPerfHigh == 0 {
		cfg.RiskPerfHigh = 40.0
	}
	if cfg.RiskAttMedium == 0 {
		cfg.RiskAttMedium = 75.0
	}
	if cfg.RiskPerfMedium == 0 {
		cfg.RiskPerfMedium = 60.0
	}
	if cfg.DropAttHigh == 0 {
		cfg.DropAttHigh = 50.0
	}
	if cfg.DropPerfHigh == 0 {
		cfg.DropPerfHigh = 40.0
	}
	if cfg.DropAttMedium == 0 {
		cfg.DropAttMedium = 70.0
	}
	if cfg.DropPerfMedium == 0 {
		cfg.DropPerfMedium = 60.0
	}

	return &Classifier{config: cfg}
}

// Predict derives the three labels for a feature set. Each label is decided
// by its model strategy when one is configured and healthy; any model error
// falls back to the rule path for that label only, so a broken model never
// fails a prediction.
func (c *Classifier) Predict(f *models.FeatureSet) *models.Prediction {
	return &models.Prediction{
		PerformanceLabel: c.decide(c.config.Models.Performance, f, c.performanceRule),
		RiskLabel:        c.decide(c.config.Models.Risk, f, c.riskRule),
		DropoutLabel:     c.decide(c.config.Models.Dropout, f, c.dropoutRule),
	}
}

func (c *Classifier) decide(model ModelStrategy, f *models.FeatureSet, rule func(*models.FeatureSet) string) string {
	if model == nil {
		return rule(f)
	}

	label, err := predictWithModel(model, f.Vector())
	if err != nil {
		logger.Warnf("Model prediction failed, using rule fallback: %v", err)
		return rule(f)
	}

	return strings.ToLower(label)
}

func (c *Classifier) performanceRule(f *models.FeatureSet) string {
	switch {
	case f.PerformanceOverall >= c.config.PerfHigh:
		return models.LabelHigh
	case f.PerformanceOverall >= c.config.PerfMedium:
		return models.LabelMedium
	default:
		return models.LabelLow
	}
}

func (c *Classifier) riskRule(f *models.FeatureSet) string {
	switch {
	case f.AttendancePct < c.config.RiskAttHigh || f.PerformanceOverall < c.config.RiskPerfHigh:
		return models.LabelHigh
	case f.AttendancePct < c.config.RiskAttMedium || f.PerformanceOverall < c.config.RiskPerfMedium:
		return models.LabelMedium
	default:
		return models.LabelLow
	}
}

func (c *Classifier) dropoutRule(f *models.FeatureSet) string {
	switch {
	case f.AttendancePct < c.config.DropAttHigh || f.PerformanceOverall < c.config.DropPerfHigh:
		return models.LabelHigh
	case f.AttendancePct < c.config.DropAttMedium || f.PerformanceOverall < c.config.DropPerfMedium:
		return models.LabelMedium
	default:
		return models.LabelLow
	}
}
