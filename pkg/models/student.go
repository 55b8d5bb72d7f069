package models

import "strings"

// StudentRecord is a single student's raw academic record as loaded from the
// data store. Field names mirror the upstream report columns. Numeric fields
// that were never filled in arrive as zero; the feature extractor treats zero
// as "no data" where that matters (e.g. SEM marks for ungraded terms).
type StudentRecord struct {
	RNO     string `json:"RNO"`
	Name    string `json:"NAME"`
	Email   string `json:"EMAIL,omitempty"`
	Dept    string `json:"DEPT"`
	Year    int    `json:"YEAR"`
	CurrSem int    `json:"CURR_SEM"`

	BatchYear int `json:"BATCH_YEAR,omitempty"`

	Sem1 float64 `json:"SEM1"`
	Sem2 float64 `json:"SEM2"`
	Sem3 float64 `json:"SEM3"`
	Sem4 float64 `json:"SEM4"`
	Sem5 float64 `json:"SEM5"`
	Sem6 float64 `json:"SEM6"`
	Sem7 float64 `json:"SEM7"`
	Sem8 float64 `json:"SEM8"`

	InternalMarks     float64 `json:"INTERNAL_MARKS"`
	TotalDaysCurr     float64 `json:"TOTAL_DAYS_CURR"`
	AttendedDaysCurr  float64 `json:"ATTENDED_DAYS_CURR"`
	PrevAttendancePct float64 `json:"PREV_ATTENDANCE_PERC"`
	BehaviorScore     float64 `json:"BEHAVIOR_SCORE_10"`

	Mentor      string `json:"MENTOR,omitempty"`
	MentorEmail string `json:"MENTOR_EMAIL,omitempty"`

	// Persisted engine output, present when a previous analysis run stored
	// its results back. Empty labels mean "not computed yet".
	PerformanceLabel   string   `json:"PERFORMANCE_LABEL,omitempty"`
	RiskLabel          string   `json:"RISK_LABEL,omitempty"`
	DropoutLabel       string   `json:"DROPOUT_LABEL,omitempty"`
	PerformanceOverall *float64 `json:"PERFORMANCE_OVERALL,omitempty"`
	RiskScore          *float64 `json:"RISK_SCORE,omitempty"`
	DropoutScore       *float64 `json:"DROPOUT_SCORE,omitempty"`
}

// SemesterMarks returns the eight semester mark slots in order.
func (s *StudentRecord) SemesterMarks() [8]float64 {
	return [8]float64{s.Sem1, s.Sem2, s.Sem3, s.Sem4, s.Sem5, s.Sem6, s.Sem7, s.Sem8}
}

// HasIdentity reports whether the record carries the minimum identity needed
// to appear in a report. Records without it are skipped by the aggregator.
func (s *StudentRecord) HasIdentity() bool {
	return strings.TrimSpace(s.RNO) != "" && strings.TrimSpace(s.Name) != ""
}

// HasStoredLabels reports whether all three labels were persisted by a
// previous run, allowing the aggregator to skip recomputation.
func (s *StudentRecord) HasStoredLabels() bool {
	return s.PerformanceLabel != "" && s.RiskLabel != "" && s.DropoutLabel != ""
}
