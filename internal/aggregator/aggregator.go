package aggregator

import (
	"strings"

	"github.com/edumetric/edumetric/internal/classifier"
	"github.com/edumetric/edumetric/internal/features"
	"github.com/edumetric/edumetric/pkg/models"
)

// Aggregator turns raw student records into group-level analysis results.
// Records that already carry persisted labels are reused as-is; everything
// else goes through the feature extractor and classifier.
type Aggregator struct {
	extractor  *features.Extractor
	classifier *classifier.Classifier
}

func New(extractor *features.Extractor, cls *classifier.Classifier) *Aggregator {
	return &Aggregator{
		extractor:  extractor,
		classifier: cls,
	}
}

// Analyze aggregates a group of records. Records missing a roll number or
// name are skipped; an empty (or fully skipped) input yields the all-zero
// result rather than an error.
func (a *Aggregator) Analyze(records []models.StudentRecord) *models.AnalysisResult {
	result := models.EmptyAnalysisResult()

	var perfTotal float64
	for i := range records {
		record := &records[i]
		if !record.HasIdentity() {
			continue
		}

		summary, overall := a.summarize(record)
		result.Table = append(result.Table, summary)

		result.Stats.TotalStudents++
		perfTotal += overall

		if summary.PerformanceLabel == models.LabelHigh {
			result.Stats.HighPerformers++
		}
		if summary.RiskLabel == models.LabelHigh {
			result.Stats.HighRisk++
		}
		if summary.DropoutLabel == models.LabelHigh {
			result.Stats.HighDropout++
		}

		result.LabelCounts.Performance[summary.PerformanceLabel]++
		result.LabelCounts.Risk[summary.RiskLabel]++
		result.LabelCounts.Dropout[summary.DropoutLabel]++
	}

	if result.Stats.TotalStudents > 0 {
		result.Stats.AvgPerformance = models.Round2(perfTotal / float64(result.Stats.TotalStudents))
	}

	return result
}

// AnalyzeStudent produces the full single-student view: derived features,
// labels, a textual insight, and the mentor-alert flag.
func (a *Aggregator) AnalyzeStudent(record *models.StudentRecord) *models.StudentDeepDive {
	featureSet := a.extractor.Compute(record)
	prediction := a.classifier.Predict(featureSet)

	return &models.StudentDeepDive{
		RNO:        record.RNO,
		Name:       record.Name,
		Dept:       record.Dept,
		Year:       record.Year,
		CurrSem:    record.CurrSem,
		Mentor:     record.Mentor,
		Features:   featureSet,
		Prediction: prediction,
		Insight:    buildInsight(record, featureSet, prediction),
		NeedAlert:  prediction.NeedsAlert(),
	}
}

// summarize builds one table row. The second return value is the overall
// performance used for group averaging: the unrounded score when computed
// fresh, the stored value when the record carries one.
func (a *Aggregator) summarize(record *models.StudentRecord) (models.StudentSummary, float64) {
	summary := models.StudentSummary{
		RNO:     record.RNO,
		Name:    record.Name,
		Dept:    record.Dept,
		Year:    record.Year,
		CurrSem: record.CurrSem,
	}

	if record.HasStoredLabels() {
		summary.PerformanceLabel = strings.ToLower(record.PerformanceLabel)
		summary.RiskLabel = strings.ToLower(record.RiskLabel)
		summary.DropoutLabel = strings.ToLower(record.DropoutLabel)

		featureSet := a.extractor.Compute(record)
		summary.PerformanceOverall = storedOrComputed(record.PerformanceOverall, featureSet.PerformanceOverall)
		summary.RiskScore = storedOrComputed(record.RiskScore, featureSet.RiskScore)
		summary.DropoutScore = storedOrComputed(record.DropoutScore, featureSet.DropoutScore)
		return summary, summary.PerformanceOverall
	}

	featureSet := a.extractor.Compute(record)
	prediction := a.classifier.Predict(featureSet)

	summary.PerformanceLabel = prediction.PerformanceLabel
	summary.RiskLabel = prediction.RiskLabel
	summary.DropoutLabel = prediction.DropoutLabel
	summary.PerformanceOverall = featureSet.PerformanceOverall
	summary.RiskScore = featureSet.RiskScore
	summary.DropoutScore = featureSet.DropoutScore
	return summary, a.extractor.OverallScore(record)
}

func storedOrComputed(stored *float64, computed float64) float64 {
	if stored != nil {
		return models.Round2(*stored)
	}
	return computed
}
