package classifier

import (
	"time"

	"github.com/edumetric/edumetric/internal/logger"
	"github.com/edumetric/edumetric/internal/resilience"
)

// ResilientModel wraps a model strategy with a circuit breaker so a model
// that keeps failing stops being called entirely; the classifier then takes
// the rule path until the breaker recovers.
type ResilientModel struct {
	model          ModelStrategy
	circuitBreaker *resilience.CircuitBreaker
}

type ResilientModelConfig struct {
	Name        string
	Model       ModelStrategy
	MaxFailures int
	Timeout     time.Duration
}

func NewResilientModel(cfg ResilientModelConfig) *ResilientModel {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:        cfg.Name,
		MaxFailures: cfg.MaxFailures,
		Timeout:     cfg.Timeout,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warnf("Model %s circuit breaker: %s -> %s", name, from, to)
		},
	})

	return &ResilientModel{
		model:          cfg.Model,
		circuitBreaker: cb,
	}
}

func (m *ResilientModel) PredictRaw(features []float64) (int, error) {
	var raw int
	err := m.circuitBreaker.Execute(func() error {
		var err error
		raw, err = m.model.PredictRaw(features)
		return err
	})
	return raw, err
}

func (m *ResilientModel) Decode(raw int) (string, error) {
	return m.model.Decode(raw)
}

func (m *ResilientModel) CircuitState() resilience.State {
	return m.circuitBreaker.State()
}
