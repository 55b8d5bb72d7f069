package models

const (
	LabelHigh   = "high"
	LabelMedium = "medium"
	LabelLow    = "low"
)

// Prediction holds the three categorical labels derived for one student.
// Labels are always lowercase.
type Prediction struct {
	PerformanceLabel string `json:"performance_label"`
	RiskLabel        string `json:"risk_label"`
	DropoutLabel     string `json:"dropout_label"`
}

// NeedsAlert reports whether the prediction warrants notifying the student's
// mentor: weak performance, or a high risk/dropout signal.
func (p *Prediction) NeedsAlert() bool {
	return p.PerformanceLabel == LabelLow ||
		p.RiskLabel == LabelHigh ||
		p.DropoutLabel == LabelHigh
}
