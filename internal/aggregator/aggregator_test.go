package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetric/edumetric/internal/classifier"
	"github.com/edumetric/edumetric/internal/features"
	"github.com/edumetric/edumetric/pkg/models"
)

func newTestAggregator() *Aggregator {
	return New(features.New(), classifier.New(classifier.Config{}))
}

func strongStudent(rno, name string) models.StudentRecord {
	return models.StudentRecord{
		RNO: rno, Name: name, Dept: "CSE", Year: 3, CurrSem: 5,
		Sem1: 85, Sem2: 88, Sem3: 90, Sem4: 92,
		InternalMarks:     28,
		TotalDaysCurr:     100,
		AttendedDaysCurr:  95,
		PrevAttendancePct: 92,
		BehaviorScore:     9,
	}
}

func strugglingStudent(rno, name string) models.StudentRecord {
	return models.StudentRecord{
		RNO: rno, Name: name, Dept: "ECE", Year: 2, CurrSem: 3,
		Sem1: 42, Sem2: 38,
		InternalMarks:     10,
		TotalDaysCurr:     100,
		AttendedDaysCurr:  40,
		PrevAttendancePct: 45,
		BehaviorScore:     4,
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	result := newTestAggregator().Analyze(nil)

	require.NotNil(t, result)
	assert.Equal(t, 0, result.Stats.TotalStudents)
	assert.Equal(t, 0.0, result.Stats.AvgPerformance)
	assert.Empty(t, result.Table)
	assert.NotNil(t, result.LabelCounts.Performance)
	assert.NotNil(t, result.LabelCounts.Risk)
	assert.NotNil(t, result.LabelCounts.Dropout)
}

func TestAnalyzeSkipsRecordsWithoutIdentity(t *testing.T) {
	records := []models.StudentRecord{
		strongStudent("22G31A3167", "Asha"),
		{RNO: "  ", Name: "Ghost", CurrSem: 3},
		{RNO: "21A91A0502", Name: "", CurrSem: 3},
	}

	result := newTestAggregator().Analyze(records)

	assert.Equal(t, 1, result.Stats.TotalStudents)
	require.Len(t, result.Table, 1)
	assert.Equal(t, "22G31A3167", result.Table[0].RNO)
}

func TestAnalyzeCountsAndAverages(t *testing.T) {
	records := []models.StudentRecord{
		strongStudent("22G31A3167", "Asha"),
		strugglingStudent("21A91A0502", "Ravi"),
	}

	result := newTestAggregator().Analyze(records)

	assert.Equal(t, 2, result.Stats.TotalStudents)
	assert.Equal(t, 1, result.Stats.HighPerformers)
	assert.Equal(t, 1, result.Stats.HighRisk)
	assert.Equal(t, 1, result.Stats.HighDropout)

	ext := features.New()
	expectedAvg := models.Round2((ext.OverallScore(&records[0]) + ext.OverallScore(&records[1])) / 2)
	assert.Equal(t, expectedAvg, result.Stats.AvgPerformance)
}

func TestAnalyzeAveragesUnroundedScores(t *testing.T) {
	// The first score is 0.0051, displayed as 0.01. Averaging the displayed
	// values would give 0.01; the true average 0.00255 rounds to 0.
	records := []models.StudentRecord{
		{RNO: "A1", Name: "One", CurrSem: 2, Sem1: 0.0102},
		{RNO: "A2", Name: "Two", CurrSem: 2},
	}

	result := newTestAggregator().Analyze(records)

	assert.Equal(t, 0.01, result.Table[0].PerformanceOverall)
	assert.Equal(t, 0.0, result.Stats.AvgPerformance)
}

func TestAnalyzeLabelCountsAreDistinctObserved(t *testing.T) {
	records := []models.StudentRecord{
		strongStudent("A1", "One"),
		strongStudent("A2", "Two"),
		strugglingStudent("A3", "Three"),
	}

	result := newTestAggregator().Analyze(records)

	assert.Equal(t, 2, result.LabelCounts.Performance[models.LabelHigh])
	assert.Equal(t, 1, result.LabelCounts.Performance[models.LabelLow])
	// No medium performers in this group, so the key never appears.
	_, ok := result.LabelCounts.Performance[models.LabelMedium]
	assert.False(t, ok)
}

func TestAnalyzeReusesStoredLabels(t *testing.T) {
	score := 72.5
	record := strongStudent("22G31A3167", "Asha")
	record.PerformanceLabel = "Medium"
	record.RiskLabel = "LOW"
	record.DropoutLabel = "low"
	record.PerformanceOverall = &score

	result := newTestAggregator().Analyze([]models.StudentRecord{record})

	require.Len(t, result.Table, 1)
	row := result.Table[0]
	assert.Equal(t, models.LabelMedium, row.PerformanceLabel)
	assert.Equal(t, models.LabelLow, row.RiskLabel)
	assert.Equal(t, 72.5, row.PerformanceOverall)
	assert.Equal(t, 1, result.LabelCounts.Performance[models.LabelMedium])
}

func TestAnalyzePartialStoredLabelsRecompute(t *testing.T) {
	record := strongStudent("22G31A3167", "Asha")
	record.PerformanceLabel = "medium"
	// Risk and dropout labels missing, so the whole row is recomputed.

	result := newTestAggregator().Analyze([]models.StudentRecord{record})

	require.Len(t, result.Table, 1)
	assert.Equal(t, models.LabelHigh, result.Table[0].PerformanceLabel)
}

func TestAnalyzeStudentDeepDive(t *testing.T) {
	record := strugglingStudent("21A91A0502", "Ravi")
	record.Mentor = "Dr. Rao"

	dive := newTestAggregator().AnalyzeStudent(&record)

	assert.Equal(t, "21A91A0502", dive.RNO)
	assert.Equal(t, "Dr. Rao", dive.Mentor)
	require.NotNil(t, dive.Features)
	require.NotNil(t, dive.Prediction)
	assert.True(t, dive.NeedAlert)
	assert.Contains(t, dive.Insight, "Ravi")
}

func TestAnalyzeStudentNoAlertForHealthyStudent(t *testing.T) {
	record := strongStudent("22G31A3167", "Asha")

	dive := newTestAggregator().AnalyzeStudent(&record)

	assert.False(t, dive.NeedAlert)
	assert.Equal(t, models.LabelHigh, dive.Prediction.PerformanceLabel)
	assert.Contains(t, dive.Insight, "performing strongly")
}
