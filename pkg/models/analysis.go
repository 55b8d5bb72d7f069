package models

// Stats summarizes an analyzed group of students.
type Stats struct {
	TotalStudents  int     `json:"total_students"`
	HighPerformers int     `json:"high_performers"`
	HighRisk       int     `json:"high_risk"`
	HighDropout    int     `json:"high_dropout"`
	AvgPerformance float64 `json:"avg_performance"`
}

// LabelCounts maps every distinct observed label value to its occurrence
// count, per label dimension. The key set is open: a dataset carrying a
// legacy "poor" tier counts it like any other value.
type LabelCounts struct {
	Performance map[string]int `json:"performance"`
	Risk        map[string]int `json:"risk"`
	Dropout     map[string]int `json:"dropout"`
}

// StudentSummary is one row of an analysis table.
type StudentSummary struct {
	RNO                string  `json:"RNO"`
	Name               string  `json:"NAME"`
	Dept               string  `json:"DEPT"`
	Year               int     `json:"YEAR"`
	CurrSem            int     `json:"CURR_SEM"`
	PerformanceLabel   string  `json:"performance_label"`
	RiskLabel          string  `json:"risk_label"`
	DropoutLabel       string  `json:"dropout_label"`
	PerformanceOverall float64 `json:"performance_overall"`
	RiskScore          float64 `json:"risk_score"`
	DropoutScore       float64 `json:"dropout_score"`
}

// AnalysisResult is the aggregate output for one analyzed group. It is
// constructed fresh per query and never mutated after return.
type AnalysisResult struct {
	Stats       Stats            `json:"stats"`
	LabelCounts LabelCounts      `json:"label_counts"`
	Table       []StudentSummary `json:"table"`
}

// EmptyAnalysisResult returns the all-zero result used when no records
// qualify. The label count maps are allocated so callers can range freely.
func EmptyAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		LabelCounts: LabelCounts{
			Performance: make(map[string]int),
			Risk:        make(map[string]int),
			Dropout:     make(map[string]int),
		},
		Table: []StudentSummary{},
	}
}

// StudentDeepDive is the single-student answer to a roll-number query.
type StudentDeepDive struct {
	RNO        string      `json:"RNO"`
	Name       string      `json:"NAME"`
	Dept       string      `json:"DEPT"`
	Year       int         `json:"YEAR"`
	CurrSem    int         `json:"CURR_SEM"`
	Mentor     string      `json:"MENTOR,omitempty"`
	Features   *FeatureSet `json:"features"`
	Prediction *Prediction `json:"predictions"`
	Insight    string      `json:"insight"`
	NeedAlert  bool        `json:"need_alert"`
}

// AttendanceSummary pairs the mean attendance with the mean performance for
// an attendance-focused query.
type AttendanceSummary struct {
	AvgAttendance  float64 `json:"avg_attendance"`
	AvgPerformance float64 `json:"avg_performance"`
}

// QueryResponse is the union shape returned by the query executor: exactly
// one of Analysis, Student, or Error is set. Comparison and Attendance
// augment Analysis for the actions that produce them.
type QueryResponse struct {
	Analysis   *AnalysisResult            `json:"analysis,omitempty"`
	Student    *StudentDeepDive           `json:"student,omitempty"`
	Comparison map[string]*AnalysisResult `json:"comparison,omitempty"`
	Attendance *AttendanceSummary         `json:"attendance,omitempty"`
	Error      string                     `json:"error,omitempty"`
	Suggestion string                     `json:"suggestion,omitempty"`
}

// IsError reports whether the response carries a user-facing error.
func (r *QueryResponse) IsError() bool {
	return r.Error != ""
}
