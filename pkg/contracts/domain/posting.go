package domain

import (
	"fmt"
	"strconv"
	"time"
)

// JobPosting represents one cleaned job listing.
// Values are created by the loader and never mutated afterwards.
type JobPosting struct {
	Title        string            `json:"title" validate:"required"`
	Country      string            `json:"country"`
	Posted       *time.Time        `json:"posted,omitempty"`
	Skills       SkillSet          `json:"skills"`
	Salary       Salary            `json:"salary"`
	Technologies map[string]string `json:"technologies,omitempty"`
}

// HasDate reports whether the posting carries a parseable posted date
func (p JobPosting) HasDate() bool {
	return p.Posted != nil
}

// Month returns the calendar month the posting was published in
func (p JobPosting) Month() (Month, bool) {
	if p.Posted == nil {
		return Month{}, false
	}
	return MonthOf(*p.Posted), true
}

// TechnologyOf returns the technology category for a skill, or "other"
func (p JobPosting) TechnologyOf(skill string) string {
	if tech, ok := p.Technologies[skill]; ok && tech != "" {
		return tech
	}
	return UnknownTechnology
}

// UnknownTechnology is used for skills missing from job_type_skills
const UnknownTechnology = "other"

// Salary is an optional annual salary. The zero value means "not reported".
type Salary struct {
	Amount float64 `json:"amount"`
	Valid  bool    `json:"valid"`
}

// NewSalary creates a reported salary
func NewSalary(amount float64) Salary {
	return Salary{Amount: amount, Valid: true}
}

// NoSalary is the absent salary
var NoSalary = Salary{}

// Get returns the amount and whether it is present
func (s Salary) Get() (float64, bool) {
	return s.Amount, s.Valid
}

// String formats the salary, or returns an empty string when absent
func (s Salary) String() string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(s.Amount, 'f', -1, 64)
}

// Month is a calendar month used as the trend grouping key
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// String formats the month as YYYY-MM
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m is earlier than other
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Label returns the short month name used on chart axes
func (m Month) Label() string {
	return m.Month.String()[:3]
}
