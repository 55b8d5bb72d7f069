package models

type Action string

const (
	ActionStudentAnalytics   Action = "student_analytics"
	ActionTopPerformers      Action = "top_performers"
	ActionLowPerformers      Action = "low_performers"
	ActionHighRisk           Action = "high_risk"
	ActionHighDropout        Action = "high_dropout"
	ActionDepartmentAnalysis Action = "department_analysis"
	ActionAttendanceAnalysis Action = "attendance_analysis"
	ActionComparison         Action = "comparison"
	ActionUnknown            Action = "unknown"
)

type Scope string

const (
	ScopeStudent    Scope = "student"
	ScopeDepartment Scope = "department"
	ScopeYear       Scope = "year"
	ScopeBatch      Scope = "batch"
	ScopeCollege    Scope = "college"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filters narrows a query to a subset of the dataset. Zero values mean
// "no restriction".
type Filters struct {
	Dept       string `json:"dept,omitempty"`
	Year       int    `json:"year,omitempty"`
	BatchYear  int    `json:"batch_year,omitempty"`
	RollNumber string `json:"roll_number,omitempty"`
}

// Intent is the structured interpretation of a free-text analytics query.
type Intent struct {
	Action  Action    `json:"action"`
	Scope   Scope     `json:"scope"`
	Filters Filters   `json:"filters"`
	Order   SortOrder `json:"order"`
	Limit   int       `json:"limit"`
}
