package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "skillpulse/internal/errors"
	"skillpulse/pkg/contracts/domain"
)

// Input column names
const (
	ColTitle      = "job_title_short"
	ColCountry    = "job_country"
	ColPosted     = "job_posted_date"
	ColSkills     = "job_skills"
	ColSalary     = "salary_year_avg"
	ColTypeSkills = "job_type_skills"
)

// RequiredColumns must be present in the input header
var RequiredColumns = []string{ColTitle, ColCountry, ColPosted, ColSkills, ColSalary}

// postedDateLayouts are tried in order
var postedDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// isMissing reports whether a raw cell holds one of the null spellings
// produced by spreadsheet and dataframe exports
func isMissing(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "nan", "none", "null", "nat":
		return true
	}
	return false
}

// ParsePostedDate parses a job_posted_date cell
func ParsePostedDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if isMissing(value) {
		return time.Time{}, apperrors.NewParsingError("empty posted date", nil)
	}
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewParsingError("unrecognized posted date", nil).
		WithContext("value", value)
}

// ParseSkills parses a job_skills cell. Missing values give an empty set.
func ParseSkills(raw string) (domain.SkillSet, error) {
	skills, err := domain.ParseSkillList(raw)
	if err != nil {
		return domain.SkillSet{}, apperrors.NewParsingError("invalid skill list", err).
			WithContext("value", raw)
	}
	return skills, nil
}

// ParseTechnologySkills parses a job_type_skills cell into skill -> category.
// Missing values give a nil map.
func ParseTechnologySkills(raw string) (map[string]string, error) {
	if isMissing(raw) {
		return nil, nil
	}
	techs, err := domain.ParseTechnologyMap(raw)
	if err != nil {
		return nil, apperrors.NewParsingError("invalid technology map", err).
			WithContext("value", raw)
	}
	return techs, nil
}

// ParseSalary parses a salary_year_avg cell. Missing values are not an error.
func ParseSalary(raw string) (domain.Salary, error) {
	if isMissing(raw) {
		return domain.NoSalary, nil
	}

	// Remove thousands separators
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return domain.NoSalary, apperrors.NewParsingError("invalid salary", err).
			WithContext("value", raw)
	}
	if math.IsInf(amount, 0) || math.IsNaN(amount) || amount <= 0 {
		return domain.NoSalary, apperrors.NewParsingError("salary out of range", nil).
			WithContext("value", raw)
	}
	return domain.NewSalary(amount), nil
}
