package aggregator

import (
	"fmt"
	"strings"

	"github.com/edumetric/edumetric/pkg/models"
)

// buildInsight writes a short human-readable summary for a single student.
// The tone follows the labels: concerns first, then strengths.
func buildInsight(record *models.StudentRecord, f *models.FeatureSet, p *models.Prediction) string {
	var parts []string

	switch p.PerformanceLabel {
	case models.LabelHigh:
		parts = append(parts, fmt.Sprintf("%s is performing strongly with an overall score of %.2f.", record.Name, f.PerformanceOverall))
	case models.LabelMedium:
		parts = append(parts, fmt.Sprintf("%s shows average performance (%.2f) with room to improve.", record.Name, f.PerformanceOverall))
	default:
		parts = append(parts, fmt.Sprintf("%s is underperforming (%.2f) and needs academic support.", record.Name, f.PerformanceOverall))
	}

	if p.RiskLabel == models.LabelHigh {
		parts = append(parts, "Academic risk is high; immediate intervention is recommended.")
	} else if p.RiskLabel == models.LabelMedium {
		parts = append(parts, "Academic risk is moderate and worth monitoring.")
	}

	if p.DropoutLabel == models.LabelHigh {
		parts = append(parts, fmt.Sprintf("Dropout indicators are elevated, driven by %.2f%% weighted attendance.", f.AttendancePct))
	}

	if f.PerformanceTrend > 0 {
		parts = append(parts, fmt.Sprintf("Marks improved by %.2f over the last graded semester.", f.PerformanceTrend))
	} else if f.PerformanceTrend < 0 {
		parts = append(parts, fmt.Sprintf("Marks dropped by %.2f since the previous semester.", -f.PerformanceTrend))
	}

	if f.AttendancePct < 75 && p.DropoutLabel != models.LabelHigh {
		parts = append(parts, fmt.Sprintf("Weighted attendance is %.2f%%, below the 75%% requirement.", f.AttendancePct))
	}

	return strings.Join(parts, " ")
}
