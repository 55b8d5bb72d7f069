package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/edumetric/edumetric/pkg/models"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Roll number shapes accepted across the affiliated colleges. Tokens are
// uppercased before matching.
var rollPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{2}[A-Z]\d{2}[A-Z][A-Z0-9]{4}$`),
	regexp.MustCompile(`^[A-Z]{2,4}\d{4}[A-Z]?\d{3,4}$`),
	regexp.MustCompile(`^\d{2}[A-Z]{2,4}\d{3,4}$`),
}

var (
	tokenPattern   = regexp.MustCompile(`[A-Za-z0-9]+`)
	ordinalPattern = regexp.MustCompile(`^([1-4])(st|nd|rd|th)$`)
)

// deptVocab maps every recognized department spelling to its canonical code.
var deptVocab = map[string]string{
	"cse":   "CSE",
	"ece":   "ECE",
	"eee":   "EEE",
	"mech":  "MECH",
	"civil": "CIVIL",
	"it":    "IT",
	"cai":   "CAI",
	"cds":   "CDS",
	"csm":   "CSM",

	// common synonyms
	"ai":   "CAI",
	"ml":   "CAI",
	"aiml": "CAI",
	"ds":   "CDS",
}

var yearWords = map[string]int{
	"first":  1,
	"second": 2,
	"third":  3,
	"fourth": 4,
	"final":  4,
}

// Parser turns a free-text analytics question into a structured Intent. It
// never fails: anything it cannot understand comes back as ActionUnknown.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse interprets one query string. A recognizable roll number anywhere in
// the text wins over every keyword and yields a single-student intent.
func (p *Parser) Parse(query string) *models.Intent {
	intent := &models.Intent{
		Action: models.ActionUnknown,
		Scope:  models.ScopeCollege,
		Order:  models.OrderDesc,
		Limit:  defaultLimit,
	}

	tokens := tokenPattern.FindAllString(query, -1)

	if rno := findRollNumber(tokens); rno != "" {
		intent.Action = models.ActionStudentAnalytics
		intent.Scope = models.ScopeStudent
		intent.Filters.RollNumber = rno
		return intent
	}

	lower := strings.ToLower(query)
	intent.Action = detectAction(lower)

	p.extractFilters(tokens, intent)
	intent.Scope = detectScope(lower, intent.Filters)

	if intent.Action == models.ActionLowPerformers {
		intent.Order = models.OrderAsc
	}

	return intent
}

func findRollNumber(tokens []string) string {
	for _, tok := range tokens {
		upper := strings.ToUpper(tok)
		for _, pattern := range rollPatterns {
			if pattern.MatchString(upper) {
				return upper
			}
		}
	}
	return ""
}

// detectAction checks intent keywords in priority order. Risk and dropout
// outrank the performer queries so "top risk students" reads as a risk
// query, and the performer words only count alongside a perform/student
// subject so "low attendance" still reads as an attendance query.
func detectAction(lower string) models.Action {
	severity := containsAny(lower, "high", "student")
	subject := containsAny(lower, "perform", "student", "topper")

	switch {
	case strings.Contains(lower, "risk") && severity:
		return models.ActionHighRisk
	case containsAny(lower, "dropout", "drop out", "drop-out") && severity:
		return models.ActionHighDropout
	case containsAny(lower, "top", "best", "high") && subject:
		return models.ActionTopPerformers
	case containsAny(lower, "weak", "low", "poor", "bad", "worst", "bottom") && subject:
		return models.ActionLowPerformers
	case strings.Contains(lower, "attendance"):
		return models.ActionAttendanceAnalysis
	case containsAny(lower, "compar", "versus", " vs "):
		return models.ActionComparison
	case containsAny(lower, "department", "dept", "branch", "analytics", "analysis"):
		return models.ActionDepartmentAnalysis
	default:
		return models.ActionUnknown
	}
}

// detectScope prefers the explicit scope words; without one, the scope
// follows whichever filter the utterance set.
func detectScope(lower string, f models.Filters) models.Scope {
	switch {
	case strings.Contains(lower, "department") || strings.Contains(lower, "dept"):
		return models.ScopeDepartment
	case strings.Contains(lower, "year"):
		return models.ScopeYear
	case strings.Contains(lower, "batch"):
		return models.ScopeBatch
	}

	switch {
	case f.Dept != "":
		return models.ScopeDepartment
	case f.Year != 0:
		return models.ScopeYear
	case f.BatchYear != 0:
		return models.ScopeBatch
	}

	return models.ScopeCollege
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (p *Parser) extractFilters(tokens []string, intent *models.Intent) {
	limitSet := false

	for i, tok := range tokens {
		lower := strings.ToLower(tok)

		if intent.Filters.Dept == "" {
			if code, ok := deptVocab[lower]; ok {
				intent.Filters.Dept = code
				continue
			}
		}

		if intent.Filters.Year == 0 {
			if m := ordinalPattern.FindStringSubmatch(lower); m != nil {
				intent.Filters.Year, _ = strconv.Atoi(m[1])
				continue
			}
			if y, ok := yearWords[lower]; ok {
				intent.Filters.Year = y
				continue
			}
		}

		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}

		switch {
		case n >= 2000 && n <= 2099:
			intent.Filters.BatchYear = n
		case n >= 1 && n <= 4 && intent.Filters.Year == 0 && nearYearWord(tokens, i):
			intent.Filters.Year = n
		case !limitSet && n > 0:
			intent.Limit = n
			if intent.Limit > maxLimit {
				intent.Limit = maxLimit
			}
			limitSet = true
		}
	}
}

// nearYearWord reports whether the token at index i sits next to a "year"
// token, which disambiguates "year 3" from "top 3".
func nearYearWord(tokens []string, i int) bool {
	for _, j := range []int{i - 1, i + 1} {
		if j >= 0 && j < len(tokens) {
			lower := strings.ToLower(tokens[j])
			if lower == "year" || lower == "yr" {
				return true
			}
		}
	}
	return false
}
