package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetric/edumetric/pkg/models"
)

func TestParseRollNumberShortCircuits(t *testing.T) {
	p := NewParser()

	tests := []struct {
		query string
		rno   string
	}{
		{"performance analytics for 22G31A3167 top 5", "22G31A3167"},
		{"tell me about 21a91a0502", "21A91A0502"},
		{"how is 20CSE001 doing", "20CSE001"},
		{"risk report for 26G31B8805", "26G31B8805"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			intent := p.Parse(tt.query)
			assert.Equal(t, models.ActionStudentAnalytics, intent.Action)
			assert.Equal(t, models.ScopeStudent, intent.Scope)
			assert.Equal(t, tt.rno, intent.Filters.RollNumber)
		})
	}
}

func TestParseActionKeywords(t *testing.T) {
	p := NewParser()

	tests := []struct {
		query    string
		expected models.Action
	}{
		{"show me high risk students", models.ActionHighRisk},
		{"which students might drop out this year", models.ActionHighDropout},
		{"high dropout cases", models.ActionHighDropout},
		{"show top 5 performers", models.ActionTopPerformers},
		{"show high performers", models.ActionTopPerformers},
		{"best students in college", models.ActionTopPerformers},
		{"weakest students", models.ActionLowPerformers},
		{"bottom 10 students", models.ActionLowPerformers},
		{"attendance analysis please", models.ActionAttendanceAnalysis},
		{"low attendance in CSE", models.ActionAttendanceAnalysis},
		{"compare CSE and ECE", models.ActionComparison},
		{"department wise analysis", models.ActionDepartmentAnalysis},
		{"analytics for 2nd year", models.ActionDepartmentAnalysis},
		{"hello there", models.ActionUnknown},
		{"dropout", models.ActionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Parse(tt.query).Action)
		})
	}
}

func TestParseRiskOutranksTop(t *testing.T) {
	intent := NewParser().Parse("top risk students")
	assert.Equal(t, models.ActionHighRisk, intent.Action)
}

func TestParseScopeKeywordWithoutFilter(t *testing.T) {
	intent := NewParser().Parse("department wise analysis")

	assert.Equal(t, models.ScopeDepartment, intent.Scope)
	assert.Empty(t, intent.Filters.Dept)
}

func TestParseDepartmentFilter(t *testing.T) {
	p := NewParser()

	tests := []struct {
		query string
		dept  string
	}{
		{"top performers in CSE", "CSE"},
		{"high risk students in mech", "MECH"},
		{"AI students at risk", "CAI"},
		{"aiml toppers", "CAI"},
		{"ds department analysis", "CDS"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			intent := p.Parse(tt.query)
			assert.Equal(t, tt.dept, intent.Filters.Dept)
			assert.Equal(t, models.ScopeDepartment, intent.Scope)
		})
	}
}

func TestParseYearAndLimit(t *testing.T) {
	intent := NewParser().Parse("show top 5 performers in CSE 2nd year")

	assert.Equal(t, models.ActionTopPerformers, intent.Action)
	assert.Equal(t, "CSE", intent.Filters.Dept)
	assert.Equal(t, 2, intent.Filters.Year)
	assert.Equal(t, 5, intent.Limit)
	assert.Equal(t, models.OrderDesc, intent.Order)
}

func TestParseYearWords(t *testing.T) {
	p := NewParser()

	tests := []struct {
		query string
		year  int
	}{
		{"third year attendance", 3},
		{"final year toppers", 4},
		{"year 2 students at risk", 2},
		{"1st year weak students", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.year, p.Parse(tt.query).Filters.Year)
		})
	}
}

func TestParseBareNumberIsLimitNotYear(t *testing.T) {
	intent := NewParser().Parse("top 3 students")
	assert.Equal(t, 0, intent.Filters.Year)
	assert.Equal(t, 3, intent.Limit)
}

func TestParseBatchYear(t *testing.T) {
	intent := NewParser().Parse("high risk students from 2022 batch")
	assert.Equal(t, 2022, intent.Filters.BatchYear)
	assert.Equal(t, models.ScopeBatch, intent.Scope)
}

func TestParseLimitCappedAtFifty(t *testing.T) {
	intent := NewParser().Parse("top 500 performers")
	assert.Equal(t, 50, intent.Limit)
}

func TestParseDefaults(t *testing.T) {
	intent := NewParser().Parse("top performers")

	assert.Equal(t, 10, intent.Limit)
	assert.Equal(t, models.ScopeCollege, intent.Scope)
	assert.Equal(t, models.OrderDesc, intent.Order)
}

func TestParseLowPerformersSortAscending(t *testing.T) {
	intent := NewParser().Parse("worst 5 students")
	assert.Equal(t, models.ActionLowPerformers, intent.Action)
	assert.Equal(t, models.OrderAsc, intent.Order)
}

func TestParseNeverPanicsOnGarbage(t *testing.T) {
	p := NewParser()

	for _, q := range []string{"", "   ", "????", "\x00\x01", "🎓🎓🎓", "0 -1 999999999999999999999"} {
		require.NotPanics(t, func() {
			intent := p.Parse(q)
			require.NotNil(t, intent)
		})
	}
}
