package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edumetric/edumetric/internal/aggregator"
	"github.com/edumetric/edumetric/internal/classifier"
	"github.com/edumetric/edumetric/internal/events"
	"github.com/edumetric/edumetric/internal/features"
	"github.com/edumetric/edumetric/internal/intent"
	"github.com/edumetric/edumetric/internal/logger"
	"github.com/edumetric/edumetric/internal/query"
	"github.com/edumetric/edumetric/pkg/config"
	"github.com/edumetric/edumetric/pkg/database/queries"
	"github.com/edumetric/edumetric/pkg/models"
)

// Engine wires the analytics pipeline together: it keeps an in-memory
// snapshot of the student roster, answers free-text and structured queries
// against it, persists engine output back to the store, and raises mentor
// alerts through the event bus.
type Engine struct {
	students   *queries.StudentRepository
	extractor  *features.Extractor
	classifier *classifier.Classifier
	aggregator *aggregator.Aggregator
	parser     *intent.Parser
	executor   *query.Executor
	bus        *events.EventBus
	publisher  *events.Publisher

	refreshInterval time.Duration

	mu      sync.RWMutex
	records []models.StudentRecord

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg config.EngineConfig, students *queries.StudentRepository, bus *events.EventBus) *Engine {
	clsConfig := classifier.Config{
		PerfHigh:   cfg.Thresholds.PerfHigh,
		PerfMedium: cfg.Thresholds.PerfMedium,

		RiskAttHigh:    cfg.Thresholds.RiskAttHigh,
		RiskPerfHigh:   cfg.Thresholds.RiskPerfHigh,
		RiskAttMedium:  cfg.Thresholds.RiskAttMedium,
		RiskPerfMedium: cfg.Thresholds.RiskPerfMedium,

		DropAttHigh:    cfg.Thresholds.DropAttHigh,
		DropPerfHigh:   cfg.Thresholds.DropPerfHigh,
		DropAttMedium:  cfg.Thresholds.DropAttMedium,
		DropPerfMedium: cfg.Thresholds.DropPerfMedium,
	}

	if cfg.Models.Enabled {
		clsConfig.Models = classifier.LoadModels(
			cfg.Models.Dir,
			cfg.CircuitBreaker.MaxFailures,
			cfg.CircuitBreaker.Timeout,
		)
	}

	extractor := features.New()
	cls := classifier.New(clsConfig)
	agg := aggregator.New(extractor, cls)

	refreshInterval := cfg.RefreshInterval
	if refreshInterval <= 0 {
		refreshInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		students:        students,
		extractor:       extractor,
		classifier:      cls,
		aggregator:      agg,
		parser:          intent.NewParser(),
		executor:        query.New(agg, extractor),
		bus:             bus,
		publisher:       events.NewPublisher(bus),
		refreshInterval: refreshInterval,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Start loads the initial snapshot and begins periodic refreshes.
func (e *Engine) Start() error {
	if err := e.Refresh(e.ctx); err != nil {
		return fmt.Errorf("initial roster load failed: %w", err)
	}

	e.wg.Add(1)
	go e.refreshLoop()

	logger.Infof("Engine started with %d students", e.StudentCount())
	return nil
}

func (e *Engine) Stop() {
	e.cancel()
	e.wg.Wait()
	logger.Info("Engine stopped")
}

func (e *Engine) refreshLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			if err := e.Refresh(e.ctx); err != nil {
				logger.Errorf("Roster refresh failed: %v", err)
			}
		}
	}
}

// Refresh reloads the roster snapshot from the store.
func (e *Engine) Refresh(ctx context.Context) error {
	records, err := e.students.LoadAll(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.records = records
	e.mu.Unlock()

	logger.Debugf("Roster refreshed: %d students", len(records))
	return nil
}

// Snapshot returns the current roster. Callers must not mutate it.
func (e *Engine) Snapshot() []models.StudentRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.records
}

func (e *Engine) StudentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Ask parses a free-text question and executes it against the snapshot. The
// returned intent tells the caller what the question was understood as.
func (e *Engine) Ask(ctx context.Context, question string) (*models.QueryResponse, *models.Intent) {
	parsed := e.parser.Parse(question)
	response := e.executor.Execute(parsed, e.Snapshot())

	e.publisher.WithTraceID(logger.TraceIDFromContext(ctx)).QueryExecuted(question, parsed)

	if response.Student != nil {
		e.afterStudentAnalysis(ctx, response.Student)
	}

	return response, parsed
}

// AnalyzeStudent runs the full single-student pipeline for a roll number,
// including fuzzy lookup, score persistence, and mentor alerting.
func (e *Engine) AnalyzeStudent(ctx context.Context, rno string) *models.QueryResponse {
	response := e.executor.Execute(&models.Intent{
		Action:  models.ActionStudentAnalytics,
		Scope:   models.ScopeStudent,
		Filters: models.Filters{RollNumber: rno},
	}, e.Snapshot())

	if response.Student != nil {
		e.afterStudentAnalysis(ctx, response.Student)
	}

	return response
}

// AnalyzeGroup aggregates the students matching the filters.
func (e *Engine) AnalyzeGroup(filters models.Filters) *models.AnalysisResult {
	snapshot := e.Snapshot()

	var group []models.StudentRecord
	for i := range snapshot {
		r := &snapshot[i]
		if filters.Dept != "" && r.Dept != filters.Dept {
			continue
		}
		if filters.Year != 0 && r.Year != filters.Year {
			continue
		}
		if filters.BatchYear != 0 && r.BatchYear != filters.BatchYear {
			continue
		}
		group = append(group, *r)
	}

	return e.aggregator.Analyze(group)
}

// Stats summarizes the whole roster.
func (e *Engine) Stats() models.Stats {
	return e.aggregator.Analyze(e.Snapshot()).Stats
}

// SubscribeAllEvents exposes the event stream for bridging to clients.
func (e *Engine) SubscribeAllEvents() <-chan *models.Event {
	return e.bus.SubscribeAll()
}

func (e *Engine) afterStudentAnalysis(ctx context.Context, dive *models.StudentDeepDive) {
	e.publisher.StudentAnalyzed(dive)

	err := e.students.UpdateScores(ctx, dive.RNO, dive.Features, dive.Prediction)
	if err != nil && err != queries.ErrStudentNotFound {
		logger.WithStudent(dive.RNO).Errorf("Failed to persist scores: %v", err)
	}

	if dive.NeedAlert {
		record := e.lookup(dive.RNO)
		alert := &models.MentorAlert{
			RNO:              dive.RNO,
			StudentName:      dive.Name,
			PerformanceLabel: dive.Prediction.PerformanceLabel,
			RiskLabel:        dive.Prediction.RiskLabel,
			DropoutLabel:     dive.Prediction.DropoutLabel,
			Reason:           alertReason(dive.Prediction),
		}
		if record != nil {
			alert.Mentor = record.Mentor
			alert.MentorEmail = record.MentorEmail
		}
		e.publisher.MentorAlert(alert)
	}
}

func (e *Engine) lookup(rno string) *models.StudentRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for i := range e.records {
		if e.records[i].RNO == rno {
			return &e.records[i]
		}
	}
	return nil
}

func alertReason(p *models.Prediction) string {
	switch {
	case p.DropoutLabel == models.LabelHigh:
		return "high dropout risk"
	case p.RiskLabel == models.LabelHigh:
		return "high academic risk"
	default:
		return "low performance"
	}
}
