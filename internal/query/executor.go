package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edumetric/edumetric/internal/aggregator"
	"github.com/edumetric/edumetric/internal/features"
	"github.com/edumetric/edumetric/internal/logger"
	"github.com/edumetric/edumetric/pkg/models"
)

// Executor answers structured intents against an in-memory snapshot of
// student records. It holds no per-query state; the same executor serves
// concurrent requests.
type Executor struct {
	aggregator *aggregator.Aggregator
	extractor  *features.Extractor
}

func New(agg *aggregator.Aggregator, extractor *features.Extractor) *Executor {
	return &Executor{
		aggregator: agg,
		extractor:  extractor,
	}
}

// Execute runs one intent over the given records and always returns a
// response; failures surface as a user-facing error with a suggestion.
func (e *Executor) Execute(intent *models.Intent, records []models.StudentRecord) *models.QueryResponse {
	if intent.Action == models.ActionStudentAnalytics {
		return e.studentAnalytics(intent.Filters.RollNumber, records)
	}

	filtered := applyFilters(records, intent.Filters)
	if len(filtered) == 0 && restricted(intent.Filters) && intent.Action != models.ActionUnknown {
		return &models.QueryResponse{
			Error:      "no students found for the selected criteria",
			Suggestion: availableGroups(records),
		}
	}

	switch intent.Action {
	case models.ActionTopPerformers, models.ActionLowPerformers:
		return e.performers(intent, filtered)

	case models.ActionHighRisk:
		return e.labelFiltered(filtered, intent.Limit, func(s *models.StudentSummary) string { return s.RiskLabel })

	case models.ActionHighDropout:
		return e.labelFiltered(filtered, intent.Limit, func(s *models.StudentSummary) string { return s.DropoutLabel })

	case models.ActionAttendanceAnalysis:
		return e.attendance(filtered)

	case models.ActionComparison:
		return e.compareDepartments(filtered)

	case models.ActionDepartmentAnalysis:
		if intent.Filters.Dept == "" {
			return e.compareDepartments(filtered)
		}
		return &models.QueryResponse{Analysis: e.aggregator.Analyze(filtered)}

	default:
		return &models.QueryResponse{
			Error:      "could not understand the question",
			Suggestion: "Try 'top 5 performers in CSE', 'high risk students', 'attendance analysis', or a roll number like 22G31A3167.",
		}
	}
}

func (e *Executor) studentAnalytics(rno string, records []models.StudentRecord) *models.QueryResponse {
	record := findByRollNumber(rno, records)
	if record == nil {
		logger.WithStudent(rno).Warn("Roll number lookup failed")
		return &models.QueryResponse{
			Error:      fmt.Sprintf("student %s not found", rno),
			Suggestion: "Check the roll number. " + availableGroups(records),
		}
	}

	return &models.QueryResponse{Student: e.aggregator.AnalyzeStudent(record)}
}

func (e *Executor) performers(intent *models.Intent, records []models.StudentRecord) *models.QueryResponse {
	result := e.aggregator.Analyze(records)

	sort.SliceStable(result.Table, func(i, j int) bool {
		if intent.Order == models.OrderAsc {
			return result.Table[i].PerformanceOverall < result.Table[j].PerformanceOverall
		}
		return result.Table[i].PerformanceOverall > result.Table[j].PerformanceOverall
	})

	result.Table = limitRows(result.Table, intent.Limit)
	return &models.QueryResponse{Analysis: result}
}

func (e *Executor) labelFiltered(records []models.StudentRecord, limit int, label func(*models.StudentSummary) string) *models.QueryResponse {
	result := e.aggregator.Analyze(records)

	matched := result.Table[:0]
	for i := range result.Table {
		if label(&result.Table[i]) == models.LabelHigh {
			matched = append(matched, result.Table[i])
		}
	}
	result.Table = limitRows(matched, limit)

	return &models.QueryResponse{Analysis: result}
}

func (e *Executor) attendance(records []models.StudentRecord) *models.QueryResponse {
	result := e.aggregator.Analyze(records)

	var attTotal float64
	var counted int
	for i := range records {
		if !records[i].HasIdentity() {
			continue
		}
		attTotal += e.extractor.Compute(&records[i]).AttendancePct
		counted++
	}

	summary := &models.AttendanceSummary{}
	if counted > 0 {
		summary.AvgAttendance = models.Round2(attTotal / float64(counted))
	}
	summary.AvgPerformance = result.Stats.AvgPerformance

	return &models.QueryResponse{
		Analysis:   result,
		Attendance: summary,
	}
}

func (e *Executor) compareDepartments(records []models.StudentRecord) *models.QueryResponse {
	byDept := make(map[string][]models.StudentRecord)
	for i := range records {
		if !records[i].HasIdentity() {
			continue
		}
		dept := strings.ToUpper(strings.TrimSpace(records[i].Dept))
		if dept == "" {
			continue
		}
		byDept[dept] = append(byDept[dept], records[i])
	}

	comparison := make(map[string]*models.AnalysisResult, len(byDept))
	for dept, group := range byDept {
		comparison[dept] = e.aggregator.Analyze(group)
	}

	return &models.QueryResponse{Comparison: comparison}
}

// restricted reports whether the intent narrows the dataset at all. An
// unrestricted query over an empty roster still aggregates to the zero
// result instead of erroring.
func restricted(f models.Filters) bool {
	return f.Dept != "" || f.Year != 0 || f.BatchYear != 0
}

func applyFilters(records []models.StudentRecord, f models.Filters) []models.StudentRecord {
	if !restricted(f) {
		return records
	}

	deptMatch := func(string) bool { return true }
	if f.Dept != "" {
		deptMatch = deptMatcher(records, f.Dept)
	}

	var out []models.StudentRecord
	for i := range records {
		r := &records[i]
		if !deptMatch(r.Dept) {
			continue
		}
		if f.Year != 0 && r.Year != f.Year {
			continue
		}
		if f.BatchYear != 0 && r.BatchYear != f.BatchYear {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// deptMatcher resolves the department restriction in two passes, like roll
// number lookup: if any record matches the code exactly, only exact matches
// count; otherwise substring matching in either direction applies, so "CS"
// finds "CSE" and "CSE" finds a stored "CSE-A".
func deptMatcher(records []models.StudentRecord, dept string) func(string) bool {
	query := strings.ToUpper(strings.TrimSpace(dept))
	exact := func(stored string) bool {
		return strings.ToUpper(strings.TrimSpace(stored)) == query
	}

	for i := range records {
		if exact(records[i].Dept) {
			return exact
		}
	}

	return func(stored string) bool {
		s := strings.ToUpper(strings.TrimSpace(stored))
		if s == "" {
			return false
		}
		return strings.Contains(s, query) || strings.Contains(query, s)
	}
}

// findByRollNumber resolves a roll number in three passes: exact match,
// substring match in either direction, then a match on the alphanumeric
// normalization of both sides.
func findByRollNumber(rno string, records []models.StudentRecord) *models.StudentRecord {
	query := strings.ToUpper(strings.TrimSpace(rno))
	if query == "" {
		return nil
	}

	for i := range records {
		if strings.ToUpper(strings.TrimSpace(records[i].RNO)) == query {
			return &records[i]
		}
	}

	for i := range records {
		stored := strings.ToUpper(strings.TrimSpace(records[i].RNO))
		if stored == "" {
			continue
		}
		if strings.Contains(stored, query) || strings.Contains(query, stored) {
			return &records[i]
		}
	}

	normalized := normalizeRoll(query)
	for i := range records {
		if normalizeRoll(records[i].RNO) == normalized {
			return &records[i]
		}
	}

	return nil
}

func normalizeRoll(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// availableGroups lists the departments and years actually present in the
// unfiltered dataset, for recovery suggestions.
func availableGroups(records []models.StudentRecord) string {
	depts := make(map[string]bool)
	years := make(map[int]bool)
	for i := range records {
		if d := strings.ToUpper(strings.TrimSpace(records[i].Dept)); d != "" {
			depts[d] = true
		}
		if records[i].Year > 0 {
			years[records[i].Year] = true
		}
	}

	deptList := make([]string, 0, len(depts))
	for d := range depts {
		deptList = append(deptList, d)
	}
	sort.Strings(deptList)

	yearList := make([]int, 0, len(years))
	for y := range years {
		yearList = append(yearList, y)
	}
	sort.Ints(yearList)

	yearStrs := make([]string, len(yearList))
	for i, y := range yearList {
		yearStrs[i] = fmt.Sprintf("%d", y)
	}

	return fmt.Sprintf("Available departments: %s. Years: %s.",
		strings.Join(deptList, ", "), strings.Join(yearStrs, ", "))
}

func limitRows(rows []models.StudentSummary, limit int) []models.StudentSummary {
	if limit <= 0 || limit >= len(rows) {
		return rows
	}
	return rows[:limit]
}
