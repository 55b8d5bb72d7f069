package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetric/edumetric/internal/aggregator"
	"github.com/edumetric/edumetric/internal/classifier"
	"github.com/edumetric/edumetric/internal/features"
	"github.com/edumetric/edumetric/pkg/models"
)

func newTestExecutor() *Executor {
	extractor := features.New()
	agg := aggregator.New(extractor, classifier.New(classifier.Config{}))
	return New(agg, extractor)
}

func sampleRecords() []models.StudentRecord {
	return []models.StudentRecord{
		{
			RNO: "22G31A3167", Name: "Asha", Dept: "CSE", Year: 3, CurrSem: 5, BatchYear: 2022,
			Sem1: 85, Sem2: 88, Sem3: 90, Sem4: 92,
			InternalMarks: 28, TotalDaysCurr: 100, AttendedDaysCurr: 95,
			PrevAttendancePct: 92, BehaviorScore: 9,
		},
		{
			RNO: "21A91A0502", Name: "Ravi", Dept: "ECE", Year: 2, CurrSem: 3, BatchYear: 2021,
			Sem1: 42, Sem2: 38,
			InternalMarks: 10, TotalDaysCurr: 100, AttendedDaysCurr: 40,
			PrevAttendancePct: 45, BehaviorScore: 4,
		},
		{
			RNO: "20CSE001", Name: "Meena", Dept: "CSE", Year: 4, CurrSem: 7, BatchYear: 2020,
			Sem1: 70, Sem2: 72, Sem3: 68, Sem4: 71, Sem5: 69, Sem6: 73,
			InternalMarks: 20, TotalDaysCurr: 100, AttendedDaysCurr: 80,
			PrevAttendancePct: 78, BehaviorScore: 7,
		},
	}
}

func TestExecuteStudentAnalyticsExactMatch(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionStudentAnalytics,
		Filters: models.Filters{RollNumber: "22G31A3167"},
	}, sampleRecords())

	require.False(t, resp.IsError())
	require.NotNil(t, resp.Student)
	assert.Equal(t, "Asha", resp.Student.Name)
	assert.Equal(t, models.LabelHigh, resp.Student.Prediction.PerformanceLabel)
}

func TestExecuteStudentAnalyticsSubstringMatch(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionStudentAnalytics,
		Filters: models.Filters{RollNumber: "A3167"},
	}, sampleRecords())

	require.NotNil(t, resp.Student)
	assert.Equal(t, "22G31A3167", resp.Student.RNO)
}

func TestExecuteStudentAnalyticsNormalizedMatch(t *testing.T) {
	records := sampleRecords()
	records[2].RNO = "20-CSE-001"

	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionStudentAnalytics,
		Filters: models.Filters{RollNumber: "20CSE001"},
	}, records)

	require.NotNil(t, resp.Student)
	assert.Equal(t, "Meena", resp.Student.Name)
}

func TestExecuteStudentNotFoundSuggestsDeptsAndYears(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionStudentAnalytics,
		Filters: models.Filters{RollNumber: "99XYZ999"},
	}, sampleRecords())

	require.True(t, resp.IsError())
	assert.Contains(t, resp.Error, "99XYZ999")
	assert.Contains(t, resp.Suggestion, "CSE")
	assert.Contains(t, resp.Suggestion, "ECE")
	assert.Contains(t, resp.Suggestion, "2")
	assert.Contains(t, resp.Suggestion, "4")
}

func TestExecuteTopPerformersSortedAndLimited(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action: models.ActionTopPerformers,
		Order:  models.OrderDesc,
		Limit:  2,
	}, sampleRecords())

	require.NotNil(t, resp.Analysis)
	require.Len(t, resp.Analysis.Table, 2)
	assert.Equal(t, "22G31A3167", resp.Analysis.Table[0].RNO)
	assert.GreaterOrEqual(t, resp.Analysis.Table[0].PerformanceOverall, resp.Analysis.Table[1].PerformanceOverall)
}

func TestExecuteLowPerformersAscending(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action: models.ActionLowPerformers,
		Order:  models.OrderAsc,
		Limit:  1,
	}, sampleRecords())

	require.NotNil(t, resp.Analysis)
	require.Len(t, resp.Analysis.Table, 1)
	assert.Equal(t, "21A91A0502", resp.Analysis.Table[0].RNO)
}

func TestExecuteHighRiskFiltersLabel(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action: models.ActionHighRisk,
		Limit:  10,
	}, sampleRecords())

	require.NotNil(t, resp.Analysis)
	require.Len(t, resp.Analysis.Table, 1)
	assert.Equal(t, "21A91A0502", resp.Analysis.Table[0].RNO)
	assert.Equal(t, models.LabelHigh, resp.Analysis.Table[0].RiskLabel)
	assert.Equal(t, 3, resp.Analysis.Stats.TotalStudents)
}

func TestExecuteHighDropoutFiltersLabel(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action: models.ActionHighDropout,
		Limit:  10,
	}, sampleRecords())

	require.NotNil(t, resp.Analysis)
	for _, row := range resp.Analysis.Table {
		assert.Equal(t, models.LabelHigh, row.DropoutLabel)
	}
}

func TestExecuteDeptFilterNarrowsGroup(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionTopPerformers,
		Filters: models.Filters{Dept: "CSE"},
		Order:   models.OrderDesc,
		Limit:   10,
	}, sampleRecords())

	require.NotNil(t, resp.Analysis)
	assert.Equal(t, 2, resp.Analysis.Stats.TotalStudents)
	for _, row := range resp.Analysis.Table {
		assert.Equal(t, "CSE", row.Dept)
	}
}

func TestExecuteDeptFilterNoMatchSuggestsAvailable(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionTopPerformers,
		Filters: models.Filters{Dept: "MECH"},
		Limit:   10,
	}, sampleRecords())

	require.True(t, resp.IsError())
	assert.Contains(t, resp.Error, "no students")
	assert.Contains(t, resp.Suggestion, "CSE")
	assert.Contains(t, resp.Suggestion, "ECE")
	assert.Contains(t, resp.Suggestion, "3")
}

func TestExecuteYearFilterNoMatchErrors(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionHighRisk,
		Filters: models.Filters{Year: 1},
		Limit:   10,
	}, sampleRecords())

	require.True(t, resp.IsError())
	assert.Contains(t, resp.Suggestion, "Available departments")
}

func TestExecuteDeptSubstringFallback(t *testing.T) {
	records := sampleRecords()
	records[0].Dept = "CSE-A"
	records[2].Dept = "CSE-B"

	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionTopPerformers,
		Filters: models.Filters{Dept: "CSE"},
		Limit:   10,
	}, records)

	require.NotNil(t, resp.Analysis)
	assert.Equal(t, 2, resp.Analysis.Stats.TotalStudents)
}

func TestExecuteDeptExactMatchBeatsSubstring(t *testing.T) {
	records := sampleRecords()
	records[2].Dept = "CSE-A"

	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionTopPerformers,
		Filters: models.Filters{Dept: "CSE"},
		Limit:   10,
	}, records)

	require.NotNil(t, resp.Analysis)
	require.Len(t, resp.Analysis.Table, 1)
	assert.Equal(t, "22G31A3167", resp.Analysis.Table[0].RNO)
}

func TestExecuteBatchYearFilter(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionTopPerformers,
		Filters: models.Filters{BatchYear: 2021},
		Limit:   10,
	}, sampleRecords())

	require.NotNil(t, resp.Analysis)
	require.Len(t, resp.Analysis.Table, 1)
	assert.Equal(t, "21A91A0502", resp.Analysis.Table[0].RNO)
}

func TestExecuteDepartmentAnalysisWithoutFiltersCompares(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action: models.ActionDepartmentAnalysis,
	}, sampleRecords())

	require.NotNil(t, resp.Comparison)
	assert.Len(t, resp.Comparison, 2)
	assert.Equal(t, 2, resp.Comparison["CSE"].Stats.TotalStudents)
	assert.Equal(t, 1, resp.Comparison["ECE"].Stats.TotalStudents)
}

func TestExecuteDepartmentAnalysisWithDeptFilter(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action:  models.ActionDepartmentAnalysis,
		Filters: models.Filters{Dept: "ECE"},
	}, sampleRecords())

	require.NotNil(t, resp.Analysis)
	assert.Equal(t, 1, resp.Analysis.Stats.TotalStudents)
}

func TestExecuteAttendanceAnalysis(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{
		Action: models.ActionAttendanceAnalysis,
	}, sampleRecords())

	require.NotNil(t, resp.Attendance)
	assert.Greater(t, resp.Attendance.AvgAttendance, 0.0)
	assert.Equal(t, resp.Analysis.Stats.AvgPerformance, resp.Attendance.AvgPerformance)
}

func TestExecuteUnknownActionReturnsSuggestion(t *testing.T) {
	resp := newTestExecutor().Execute(&models.Intent{Action: models.ActionUnknown}, sampleRecords())

	require.True(t, resp.IsError())
	assert.NotEmpty(t, resp.Suggestion)
}

func TestExecuteEmptyDatasetNeverPanics(t *testing.T) {
	e := newTestExecutor()

	actions := []models.Action{
		models.ActionTopPerformers,
		models.ActionHighRisk,
		models.ActionHighDropout,
		models.ActionAttendanceAnalysis,
		models.ActionComparison,
		models.ActionDepartmentAnalysis,
	}

	for _, action := range actions {
		require.NotPanics(t, func() {
			resp := e.Execute(&models.Intent{Action: action, Limit: 5}, nil)
			require.NotNil(t, resp)
		})
	}
}
