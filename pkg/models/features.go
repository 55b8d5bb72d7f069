package models

// FeatureSet contains the derived numeric metrics computed from one student's
// raw record. All percentage-like fields are rounded to 2 decimals for
// display; aggregation that needs full precision recomputes from the record.
type FeatureSet struct {
	PastAvg            float64 `json:"past_avg"`
	PastCount          int     `json:"past_count"`
	PerformanceTrend   float64 `json:"performance_trend"`
	InternalPct        float64 `json:"internal_pct"`
	BehaviorPct        float64 `json:"behavior_pct"`
	PresentAtt         float64 `json:"present_att"`
	PrevAtt            float64 `json:"prev_att"`
	AttendancePct      float64 `json:"attendance_pct"`
	PerformanceOverall float64 `json:"performance_overall"`
	RiskScore          float64 `json:"risk_score"`
	DropoutScore       float64 `json:"dropout_score"`
}

// FeatureVectorSize is the length of the vector fed to model strategies.
const FeatureVectorSize = 6

// Vector returns the features in the fixed order expected by trained models:
// [past_avg, past_count, internal_pct, attendance_pct, behavior_pct, performance_trend].
func (f *FeatureSet) Vector() []float64 {
	return []float64{
		f.PastAvg,
		float64(f.PastCount),
		f.InternalPct,
		f.AttendancePct,
		f.BehaviorPct,
		f.PerformanceTrend,
	}
}
