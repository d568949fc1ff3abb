package dataprocessing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "skillpulse/internal/errors"
	"skillpulse/internal/shared/testutil"
	"skillpulse/pkg/contracts/domain"
)

func TestDefaultAnalysisOptions(t *testing.T) {
	opts := DefaultAnalysisOptions()
	assert.Equal(t, "Data Analyst", opts.FocusTitle)
	assert.Equal(t, 3, opts.TopTitles)
	assert.Equal(t, 5, opts.TopN)
	assert.Equal(t, 10, opts.SalaryTopN)
	assert.Equal(t, 6, opts.DistributionTitles)
	assert.Equal(t, 5.0, opts.MinDemandPercent)
	assert.False(t, opts.Ascending)
}

func TestAnalysisOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *AnalysisOptions)
		field   string
		wantErr bool
	}{
		{name: "defaults", mutate: func(o *AnalysisOptions) {}},
		{name: "zero top n", mutate: func(o *AnalysisOptions) { o.TopN = 0 }, field: "top_n", wantErr: true},
		{name: "missing title", mutate: func(o *AnalysisOptions) { o.FocusTitle = "" }, field: "focus_title", wantErr: true},
		{name: "threshold above 100", mutate: func(o *AnalysisOptions) { o.MinDemandPercent = 120 }, field: "min_demand_percent", wantErr: true},
		{name: "zero threshold", mutate: func(o *AnalysisOptions) { o.MinDemandPercent = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultAnalysisOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperrors.ErrValidation))
				assert.Contains(t, err.Error(), "'"+tt.field+"'")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAnalyzeDemand(t *testing.T) {
	opts := DefaultAnalysisOptions()
	opts.TopTitles = 2
	opts.TopN = 2

	result := AnalyzeDemand(samplePostings(), opts)

	assert.Equal(t, []domain.TitleCount{
		{Title: "Data Analyst", Count: 4},
		{Title: "Data Scientist", Count: 2},
	}, result.Titles)

	var got []string
	for _, f := range result.Skills {
		got = append(got, f.Title+"/"+f.Skill)
	}
	assert.Equal(t, []string{
		"Data Analyst/sql",
		"Data Analyst/excel",
		"Data Scientist/python",
		"Data Scientist/sql",
	}, got)
}

func TestAnalyzeDemand_UndatedPostingCounts(t *testing.T) {
	postings := []domain.JobPosting{
		testutil.Posting("Data Analyst", []string{"sql"}, 0, "2023-01-02"),
		testutil.Posting("Data Analyst", []string{"python"}, 0, ""),
	}

	demand := AnalyzeDemand(postings, DefaultAnalysisOptions())
	require.Len(t, demand.Skills, 2)
	assert.Equal(t, "python", demand.Skills[0].Skill)
	assert.Equal(t, 50.0, demand.Skills[0].Percent)

	trend := AnalyzeTrend(postings, DefaultAnalysisOptions())
	assert.Equal(t, []string{"sql"}, trend.Skills)
	for _, tr := range trend.Trends {
		assert.NotEqual(t, "python", tr.Skill)
	}
}

func TestAnalyzeTrend(t *testing.T) {
	opts := DefaultAnalysisOptions()
	opts.TopN = 2

	result := AnalyzeTrend(samplePostings(), opts)

	jan := domain.Month{Year: 2023, Month: 1}
	feb := domain.Month{Year: 2023, Month: 2}

	assert.Equal(t, "Data Analyst", result.Title)
	// Dated Data Analyst postings: sql twice, excel twice; tie broken by name
	assert.Equal(t, []string{"excel", "sql"}, result.Skills)
	assert.Equal(t, []domain.MonthCount{{Month: jan, Count: 2}, {Month: feb, Count: 1}}, result.Months)

	// Dense series: every month for every skill, zero filled
	assert.Equal(t, []domain.SkillTrend{
		{Skill: "excel", Month: jan, Count: 1, Percent: 50},
		{Skill: "excel", Month: feb, Count: 1, Percent: 100},
		{Skill: "sql", Month: jan, Count: 2, Percent: 100},
		{Skill: "sql", Month: feb, Count: 0, Percent: 0},
	}, result.Trends)
}

func TestAnalyzeTrend_UnknownTitle(t *testing.T) {
	opts := DefaultAnalysisOptions()
	opts.FocusTitle = "Astronaut"

	result := AnalyzeTrend(samplePostings(), opts)
	assert.Empty(t, result.Skills)
	assert.Empty(t, result.Trends)
	assert.Empty(t, result.Months)
}

func TestAnalyzePay(t *testing.T) {
	opts := DefaultAnalysisOptions()
	opts.SalaryTopN = 2

	result := AnalyzePay(samplePostings(), opts)

	var titles []string
	for _, d := range result.Distributions {
		titles = append(titles, d.Title)
	}
	// Ordered by median salary, highest first; equal medians by title
	assert.Equal(t, []string{"Data Engineer", "Data Scientist", "Data Analyst"}, titles)
	assert.Equal(t, 140000.0, result.Distributions[0].Median)

	// Salaried Data Analyst postings: {excel, sql} 80000 and {sql, tableau} 100000
	assert.Equal(t, []domain.SkillSalary{
		{Skill: "tableau", MedianSalary: 100000, Count: 1},
		{Skill: "sql", MedianSalary: 90000, Count: 2},
	}, result.TopPaid)
	assert.Equal(t, []domain.SkillSalary{
		{Skill: "sql", MedianSalary: 90000, Count: 2},
		{Skill: "excel", MedianSalary: 80000, Count: 1},
	}, result.MostDemanded)
}

func TestAnalyzePay_DistributionTitleLimit(t *testing.T) {
	opts := DefaultAnalysisOptions()
	opts.DistributionTitles = 1

	result := AnalyzePay(samplePostings(), opts)
	require.Len(t, result.Distributions, 1)
	// Data Analyst and Data Scientist both have two salaried postings
	assert.Equal(t, "Data Analyst", result.Distributions[0].Title)
}

func TestAnalyzeOptimal(t *testing.T) {
	opts := DefaultAnalysisOptions()
	opts.MinDemandPercent = 50

	result := AnalyzeOptimal(samplePostings(), opts)
	assert.Equal(t, 50.0, result.MinDemandPercent)

	var skills []string
	for _, o := range result.Opportunities {
		skills = append(skills, o.Skill)
		assert.GreaterOrEqual(t, o.DemandPercent, 50.0)
		assert.True(t, o.HasSalary())
	}
	// python (25%) and tableau (25%) fall below the threshold
	assert.Equal(t, []string{"sql", "excel"}, skills)
}

func TestAnalyzeOptimal_ExcludesUnpaidSkills(t *testing.T) {
	postings := []domain.JobPosting{
		testutil.Posting("Data Analyst", []string{"sql"}, 90000, ""),
		testutil.Posting("Data Analyst", []string{"looker"}, 0, ""),
	}

	result := AnalyzeOptimal(postings, DefaultAnalysisOptions())
	require.Len(t, result.Opportunities, 1)
	assert.Equal(t, "sql", result.Opportunities[0].Skill)
}
