package domain

// SkillFrequency is the demand for one skill within one job title
type SkillFrequency struct {
	Title   string  `json:"title"`
	Skill   string  `json:"skill"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// SkillTrend is the share of one month's postings that list a skill
type SkillTrend struct {
	Skill   string  `json:"skill"`
	Month   Month   `json:"month"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// SkillSalary is the median salary of postings listing a skill.
// Count is the number of postings with a reported salary.
type SkillSalary struct {
	Skill        string  `json:"skill"`
	MedianSalary float64 `json:"median_salary"`
	Count        int     `json:"count"`
}

// TitleCount is the number of postings for a job title
type TitleCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// MonthCount is the number of dated postings in a month
type MonthCount struct {
	Month Month `json:"month"`
	Count int   `json:"count"`
}

// TitleSalaryDistribution is the five-number salary summary for a job title
type TitleSalaryDistribution struct {
	Title  string  `json:"title"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// SkillOpportunity joins demand and compensation for one skill.
// DemandPercent uses every posting as denominator; MedianSalary only the
// postings that report a salary.
type SkillOpportunity struct {
	Skill         string  `json:"skill"`
	Technology    string  `json:"technology"`
	Count         int     `json:"count"`
	SalaryCount   int     `json:"salary_count"`
	DemandPercent float64 `json:"demand_percent"`
	MedianSalary  float64 `json:"median_salary"`
}

// HasSalary reports whether at least one posting for the skill reported a salary
func (o SkillOpportunity) HasSalary() bool {
	return o.SalaryCount > 0
}

// Question identifies one of the fixed analyses
type Question string

const (
	QuestionDemand  Question = "demand"
	QuestionTrend   Question = "trend"
	QuestionPay     Question = "pay"
	QuestionOptimal Question = "optimal"
)

// AllQuestions lists the analyses in report order
var AllQuestions = []Question{QuestionDemand, QuestionTrend, QuestionPay, QuestionOptimal}

// IsValid reports whether q is a known question
func (q Question) IsValid() bool {
	switch q {
	case QuestionDemand, QuestionTrend, QuestionPay, QuestionOptimal:
		return true
	}
	return false
}

// Title returns the business question answered by q
func (q Question) Title() string {
	switch q {
	case QuestionDemand:
		return "What are the most demanded skills for the top data roles?"
	case QuestionTrend:
		return "How are in-demand skills trending?"
	case QuestionPay:
		return "How well do jobs and skills pay?"
	case QuestionOptimal:
		return "What is the most optimal skill to learn?"
	}
	return string(q)
}
