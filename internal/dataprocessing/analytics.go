package dataprocessing

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "skillpulse/internal/errors"
	"skillpulse/pkg/contracts/domain"
)

// AnalysisOptions parameterizes the four questions
type AnalysisOptions struct {
	FocusTitle         string  `json:"focus_title" validate:"required"`
	TopTitles          int     `json:"top_titles" validate:"min=1"`
	TopN               int     `json:"top_n" validate:"min=1"`
	SalaryTopN         int     `json:"salary_top_n" validate:"min=1"`
	DistributionTitles int     `json:"distribution_titles" validate:"min=1"`
	MinDemandPercent   float64 `json:"min_demand_percent" validate:"min=0,max=100"`
	Ascending          bool    `json:"ascending"`
}

// optionsValidator reports fields by their json names
var optionsValidator = newOptionsValidator()

func newOptionsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks option bounds
func (o AnalysisOptions) Validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return apperrors.NewValidationError("invalid analysis options", err)
	}
	return nil
}

// DefaultAnalysisOptions returns the standard report settings
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		FocusTitle:         "Data Analyst",
		TopTitles:          3,
		TopN:               DefaultDemandTopN,
		SalaryTopN:         DefaultSalaryTopN,
		DistributionTitles: 6,
		MinDemandPercent:   5,
	}
}

func (o AnalysisOptions) demandRank() RankOptions {
	return RankOptions{TopN: o.TopN, Ascending: o.Ascending}
}

func (o AnalysisOptions) salaryRank() RankOptions {
	return RankOptions{TopN: o.SalaryTopN, Ascending: o.Ascending}
}

// DemandResult answers which skills the most popular titles ask for
type DemandResult struct {
	Titles []domain.TitleCount
	Skills []domain.SkillFrequency
}

// TrendResult holds monthly skill shares for the focus title.
// Trends has one row per (skill, month) for every month with postings, skills
// in rank order and months ascending within each skill.
type TrendResult struct {
	Title  string
	Skills []string
	Months []domain.MonthCount
	Trends []domain.SkillTrend
}

// PayResult holds salary distributions per title and skill pay for the focus title
type PayResult struct {
	Title         string
	Distributions []domain.TitleSalaryDistribution
	TopPaid       []domain.SkillSalary
	MostDemanded  []domain.SkillSalary
}

// OptimalResult holds demand versus pay for the focus title's skills
type OptimalResult struct {
	Title            string
	MinDemandPercent float64
	Opportunities    []domain.SkillOpportunity
}

// topTitles returns the n most frequent titles
func topTitles(postings []domain.JobPosting, n int) []domain.TitleCount {
	counts := TitlePostingCounts(postings)
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

var rankFrequencyByPercent = Ranking[domain.SkillFrequency]{
	Group: func(f domain.SkillFrequency) string { return f.Title },
	Value: func(f domain.SkillFrequency) float64 { return f.Percent },
	Label: func(f domain.SkillFrequency) string { return f.Skill },
}

// AnalyzeDemand ranks skills by share of postings for each of the top titles.
// Titles are reported most popular first.
func AnalyzeDemand(postings []domain.JobPosting, opts AnalysisOptions) DemandResult {
	titles := topTitles(postings, opts.TopTitles)

	var skills []domain.SkillFrequency
	for _, tc := range titles {
		freq := SkillDemandByTitle(FilterTitle(postings, tc.Title))
		skills = append(skills, Rank(freq, rankFrequencyByPercent, opts.demandRank())...)
	}

	return DemandResult{Titles: titles, Skills: skills}
}

// AnalyzeTrend tracks the focus title's top skills month by month.
// Postings without a date do not contribute.
func AnalyzeTrend(postings []domain.JobPosting, opts AnalysisOptions) TrendResult {
	focus := Dated(FilterTitle(postings, opts.FocusTitle))
	result := TrendResult{Title: opts.FocusTitle, Months: MonthlyPostingCounts(focus)}

	totals := SkillDemandByTitle(focus)
	top := Rank(totals, Ranking[domain.SkillFrequency]{
		Value: func(f domain.SkillFrequency) float64 { return float64(f.Count) },
		Label: func(f domain.SkillFrequency) string { return f.Skill },
	}, opts.demandRank())

	type key struct {
		skill string
		month domain.Month
	}
	observed := make(map[key]domain.SkillTrend)
	for _, tr := range SkillTrendByMonth(focus) {
		observed[key{tr.Skill, tr.Month}] = tr
	}

	for _, f := range top {
		result.Skills = append(result.Skills, f.Skill)
		for _, mc := range result.Months {
			tr, ok := observed[key{f.Skill, mc.Month}]
			if !ok {
				tr = domain.SkillTrend{Skill: f.Skill, Month: mc.Month}
			}
			result.Trends = append(result.Trends, tr)
		}
	}

	return result
}

// AnalyzePay summarizes salaries for the most common salaried titles, ordered
// by median, and ranks the focus title's skills by pay and by demand
func AnalyzePay(postings []domain.JobPosting, opts AnalysisOptions) PayResult {
	salaried := Salaried(postings)
	result := PayResult{Title: opts.FocusTitle}

	var titles []string
	for _, tc := range topTitles(salaried, opts.DistributionTitles) {
		titles = append(titles, tc.Title)
	}
	result.Distributions = Rank(TitleSalaryDistributions(FilterTitles(salaried, titles)),
		Ranking[domain.TitleSalaryDistribution]{
			Value: func(d domain.TitleSalaryDistribution) float64 { return d.Median },
			Label: func(d domain.TitleSalaryDistribution) string { return d.Title },
		}, RankOptions{Ascending: opts.Ascending})

	skillPay := SkillSalaries(FilterTitle(salaried, opts.FocusTitle))

	result.TopPaid = Rank(skillPay, Ranking[domain.SkillSalary]{
		Value: func(s domain.SkillSalary) float64 { return s.MedianSalary },
		Label: func(s domain.SkillSalary) string { return s.Skill },
	}, opts.salaryRank())

	result.MostDemanded = Rank(skillPay, Ranking[domain.SkillSalary]{
		Value: func(s domain.SkillSalary) float64 { return float64(s.Count) },
		Label: func(s domain.SkillSalary) string { return s.Skill },
	}, opts.salaryRank())

	return result
}

// AnalyzeOptimal keeps the focus title's skills at or above the demand
// threshold that have salary data, most demanded first
func AnalyzeOptimal(postings []domain.JobPosting, opts AnalysisOptions) OptimalResult {
	result := OptimalResult{Title: opts.FocusTitle, MinDemandPercent: opts.MinDemandPercent}

	var eligible []domain.SkillOpportunity
	for _, o := range SkillOpportunities(FilterTitle(postings, opts.FocusTitle)) {
		if o.DemandPercent >= opts.MinDemandPercent && o.HasSalary() {
			eligible = append(eligible, o)
		}
	}

	result.Opportunities = Rank(eligible, Ranking[domain.SkillOpportunity]{
		Value: func(o domain.SkillOpportunity) float64 { return o.DemandPercent },
		Label: func(o domain.SkillOpportunity) string { return o.Skill },
	}, RankOptions{Ascending: opts.Ascending})

	return result
}
