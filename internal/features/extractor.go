package features

import (
	"math"

	"github.com/edumetric/edumetric/pkg/models"
)

// Weights of the blended scores. Attendance blends the current term with the
// previous term and behavior; the overall performance score leans on past
// semester marks, while the dropout score leans on attendance.
const (
	attWeightPresent  = 0.70
	attWeightPrev     = 0.20
	attWeightBehavior = 0.10

	perfWeightPastAvg    = 0.50
	perfWeightInternal   = 0.30
	perfWeightAttendance = 0.15
	perfWeightBehavior   = 0.05

	dropWeightPastAvg    = 0.10
	dropWeightInternal   = 0.10
	dropWeightAttendance = 0.70
	dropWeightBehavior   = 0.10

	internalMarksMax = 30.0
)

// Extractor derives a FeatureSet from a raw student record. It is pure and
// stateless: missing or zero fields default silently, nothing ever errors.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// blended holds the derived metrics at full precision, before the display
// rounding applied to the exported FeatureSet.
type blended struct {
	pastAvg            float64
	pastCount          int
	trend              float64
	internalPct        float64
	behaviorPct        float64
	presentAtt         float64
	attendancePct      float64
	performanceOverall float64
	riskScore          float64
	dropoutScore       float64
}

// Compute derives the feature set for one record, rounded to two decimals.
func (e *Extractor) Compute(record *models.StudentRecord) *models.FeatureSet {
	b := e.compute(record)
	return &models.FeatureSet{
		PastAvg:            models.Round2(b.pastAvg),
		PastCount:          b.pastCount,
		PerformanceTrend:   models.Round2(b.trend),
		InternalPct:        models.Round2(b.internalPct),
		BehaviorPct:        models.Round2(b.behaviorPct),
		PresentAtt:         models.Round2(b.presentAtt),
		PrevAtt:            models.Round2(record.PrevAttendancePct),
		AttendancePct:      models.Round2(b.attendancePct),
		PerformanceOverall: models.Round2(b.performanceOverall),
		RiskScore:          models.Round2(b.riskScore),
		DropoutScore:       models.Round2(b.dropoutScore),
	}
}

// OverallScore returns the blended performance score before rounding. Group
// averages accumulate these so rounding happens once, on the final average.
func (e *Extractor) OverallScore(record *models.StudentRecord) float64 {
	return e.compute(record).performanceOverall
}

// compute does the actual derivation. Semester marks at or after the current
// semester are ignored even when populated; they represent terms that have
// not been graded yet.
func (e *Extractor) compute(record *models.StudentRecord) blended {
	currSem := record.CurrSem
	if currSem < 1 {
		currSem = 1
	}

	marks := record.SemesterMarks()
	var past []float64
	for i := 1; i < currSem && i <= len(marks); i++ {
		if v := marks[i-1]; v > 0 {
			past = append(past, v)
		}
	}

	pastCount := len(past)
	pastAvg := 0.0
	if pastCount > 0 {
		var total float64
		for _, v := range past {
			total += v
		}
		pastAvg = total / float64(pastCount)
	}

	trend := 0.0
	if pastCount >= 2 {
		trend = past[pastCount-1] - past[pastCount-2]
	}

	internalPct := record.InternalMarks / internalMarksMax * 100.0
	behaviorPct := record.BehaviorScore * 10.0

	presentAtt := 0.0
	if record.TotalDaysCurr > 0 {
		presentAtt = record.AttendedDaysCurr / record.TotalDaysCurr * 100.0
	}

	attendancePct := presentAtt*attWeightPresent +
		record.PrevAttendancePct*attWeightPrev +
		behaviorPct*attWeightBehavior

	performanceOverall := pastAvg*perfWeightPastAvg +
		internalPct*perfWeightInternal +
		attendancePct*perfWeightAttendance +
		behaviorPct*perfWeightBehavior

	riskScore := math.Abs(100.0 - performanceOverall)

	dropoutOverall := pastAvg*dropWeightPastAvg +
		internalPct*dropWeightInternal +
		attendancePct*dropWeightAttendance +
		behaviorPct*dropWeightBehavior
	dropoutScore := math.Abs(100.0 - dropoutOverall)

	return blended{
		pastAvg:            pastAvg,
		pastCount:          pastCount,
		trend:              trend,
		internalPct:        internalPct,
		behaviorPct:        behaviorPct,
		presentAtt:         presentAtt,
		attendancePct:      attendancePct,
		performanceOverall: performanceOverall,
		riskScore:          riskScore,
		dropoutScore:       dropoutScore,
	}
}
