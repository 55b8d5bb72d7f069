package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetric/edumetric/pkg/models"
)

func TestComputePastMarksWindow(t *testing.T) {
	f := New().Compute(&models.StudentRecord{
		CurrSem: 5,
		Sem1:    80, Sem2: 0, Sem3: 70, Sem4: 90,
		Sem5: 99, // current term, must be ignored
	})

	// Sem2 is zero (ungraded), so only three marks count.
	assert.Equal(t, 3, f.PastCount)
	assert.Equal(t, 80.0, f.PastAvg)
	assert.Equal(t, 20.0, f.PerformanceTrend)
}

func TestComputeFirstSemesterHasNoHistory(t *testing.T) {
	f := New().Compute(&models.StudentRecord{CurrSem: 1, Sem1: 95})

	assert.Equal(t, 0, f.PastCount)
	assert.Equal(t, 0.0, f.PastAvg)
	assert.Equal(t, 0.0, f.PerformanceTrend)
}

func TestComputeSingleGradedSemesterHasNoTrend(t *testing.T) {
	f := New().Compute(&models.StudentRecord{CurrSem: 3, Sem1: 0, Sem2: 75})

	assert.Equal(t, 1, f.PastCount)
	assert.Equal(t, 75.0, f.PastAvg)
	assert.Equal(t, 0.0, f.PerformanceTrend)
}

func TestComputeNegativeTrend(t *testing.T) {
	f := New().Compute(&models.StudentRecord{CurrSem: 3, Sem1: 80, Sem2: 65})

	assert.Equal(t, -15.0, f.PerformanceTrend)
}

func TestComputePercentScaling(t *testing.T) {
	f := New().Compute(&models.StudentRecord{
		CurrSem:       1,
		InternalMarks: 15,
		BehaviorScore: 8,
	})

	assert.Equal(t, 50.0, f.InternalPct)
	assert.Equal(t, 80.0, f.BehaviorPct)
}

func TestComputeAttendanceZeroTotalDays(t *testing.T) {
	f := New().Compute(&models.StudentRecord{
		CurrSem:          1,
		TotalDaysCurr:    0,
		AttendedDaysCurr: 30,
	})

	assert.Equal(t, 0.0, f.PresentAtt)
}

func TestComputeWeightedAttendance(t *testing.T) {
	f := New().Compute(&models.StudentRecord{
		CurrSem:           1,
		TotalDaysCurr:     100,
		AttendedDaysCurr:  80,
		PrevAttendancePct: 90,
		BehaviorScore:     10,
	})

	// 0.70*80 + 0.20*90 + 0.10*100
	assert.Equal(t, 84.0, f.AttendancePct)
}

func TestComputeOverallScores(t *testing.T) {
	f := New().Compute(&models.StudentRecord{
		CurrSem: 3,
		Sem1:    80, Sem2: 80,
		InternalMarks:     30,
		TotalDaysCurr:     100,
		AttendedDaysCurr:  100,
		PrevAttendancePct: 100,
		BehaviorScore:     10,
	})

	require.Equal(t, 80.0, f.PastAvg)
	assert.Equal(t, 100.0, f.InternalPct)
	assert.Equal(t, 100.0, f.AttendancePct)

	// 0.50*80 + 0.30*100 + 0.15*100 + 0.05*100 = 90
	assert.Equal(t, 90.0, f.PerformanceOverall)
	assert.Equal(t, 10.0, f.RiskScore)

	// dropout blend: 0.10*80 + 0.10*100 + 0.70*100 + 0.10*100 = 98
	assert.Equal(t, 2.0, f.DropoutScore)
}

func TestComputeZeroRecordIsSafe(t *testing.T) {
	f := New().Compute(&models.StudentRecord{})

	assert.Equal(t, 0, f.PastCount)
	assert.Equal(t, 0.0, f.AttendancePct)
	assert.Equal(t, 100.0, f.RiskScore)
	assert.Equal(t, 100.0, f.DropoutScore)
}

func TestComputeRoundsToTwoDecimals(t *testing.T) {
	f := New().Compute(&models.StudentRecord{
		CurrSem: 4,
		Sem1:    71, Sem2: 73, Sem3: 74,
		InternalMarks: 17,
	})

	// 17/30*100 = 56.666... -> 56.67
	assert.Equal(t, 56.67, f.InternalPct)
	assert.Equal(t, 72.67, f.PastAvg)
}

func TestVectorOrder(t *testing.T) {
	f := &models.FeatureSet{
		PastAvg:          70,
		PastCount:        4,
		InternalPct:      60,
		AttendancePct:    85,
		BehaviorPct:      90,
		PerformanceTrend: -3,
	}

	v := f.Vector()
	require.Len(t, v, models.FeatureVectorSize)
	assert.Equal(t, []float64{70, 4, 60, 85, 90, -3}, v)
}

func TestOverallScoreMatchesRoundedFeatureSet(t *testing.T) {
	record := models.StudentRecord{
		CurrSem: 5,
		Sem1:    85, Sem2: 88, Sem3: 90, Sem4: 92,
		InternalMarks: 28, TotalDaysCurr: 100, AttendedDaysCurr: 95,
		PrevAttendancePct: 92, BehaviorScore: 9,
	}

	e := New()
	assert.Equal(t, e.Compute(&record).PerformanceOverall, models.Round2(e.OverallScore(&record)))
}
