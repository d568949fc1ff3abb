package presenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpulse/internal/dataprocessing"
	"skillpulse/pkg/contracts/domain"
)

func sampleDemand() dataprocessing.DemandResult {
	return dataprocessing.DemandResult{
		Titles: []domain.TitleCount{
			{Title: "Data Analyst", Count: 1200},
			{Title: "Data Engineer", Count: 800},
		},
		Skills: []domain.SkillFrequency{
			{Title: "Data Analyst", Skill: "sql", Count: 600, Percent: 50},
			{Title: "Data Analyst", Skill: "excel", Count: 480, Percent: 40},
			{Title: "Data Engineer", Skill: "python", Count: 560, Percent: 70},
		},
	}
}

func sampleTrend() dataprocessing.TrendResult {
	jan := domain.Month{Year: 2023, Month: time.January}
	feb := domain.Month{Year: 2023, Month: time.February}
	return dataprocessing.TrendResult{
		Title:  "Data Analyst",
		Skills: []string{"sql", "excel"},
		Months: []domain.MonthCount{{Month: jan, Count: 10}, {Month: feb, Count: 20}},
		Trends: []domain.SkillTrend{
			{Skill: "sql", Month: jan, Count: 5, Percent: 50},
			{Skill: "sql", Month: feb, Count: 8, Percent: 40},
			{Skill: "excel", Month: jan, Count: 3, Percent: 30},
			{Skill: "excel", Month: feb, Count: 0, Percent: 0},
		},
	}
}

func samplePay() dataprocessing.PayResult {
	return dataprocessing.PayResult{
		Title: "Data Analyst",
		Distributions: []domain.TitleSalaryDistribution{
			{Title: "Data Engineer", Count: 40, Min: 80000, Q1: 110000, Median: 130000, Q3: 150000, Max: 200000},
			{Title: "Data Analyst", Count: 60, Min: 50000, Q1: 70000, Median: 90000, Q3: 100000, Max: 150000},
		},
		TopPaid: []domain.SkillSalary{
			{Skill: "spark", MedianSalary: 120000, Count: 4},
			{Skill: "python", MedianSalary: 100000, Count: 20},
		},
		MostDemanded: []domain.SkillSalary{
			{Skill: "sql", MedianSalary: 95000, Count: 30},
		},
	}
}

func sampleOptimal() dataprocessing.OptimalResult {
	return dataprocessing.OptimalResult{
		Title:            "Data Analyst",
		MinDemandPercent: 5,
		Opportunities: []domain.SkillOpportunity{
			{Skill: "sql", Technology: "programming", Count: 50, SalaryCount: 30, DemandPercent: 50, MedianSalary: 95000},
			{Skill: "tableau", Technology: "analyst_tools", Count: 25, SalaryCount: 10, DemandPercent: 25, MedianSalary: 92000},
			{Skill: "python", Technology: "programming", Count: 20, SalaryCount: 12, DemandPercent: 20, MedianSalary: 100000},
		},
	}
}

func allViews() []View {
	var views []View
	views = append(views, DemandViews(sampleDemand())...)
	views = append(views, TrendViews(sampleTrend())...)
	views = append(views, PayViews(samplePay())...)
	views = append(views, OptimalViews(sampleOptimal())...)
	return views
}

func TestViews_TablesAndCharts(t *testing.T) {
	views := allViews()

	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Table.Name
		assert.True(t, v.Question.IsValid())
		if v.Chart != nil {
			assert.NoError(t, v.Chart.Validate(v.Table), v.Table.Name)
		}
	}

	assert.Equal(t, []string{
		TableTitleCounts, TableSkillDemand,
		TableMonthlyPostings, TableSkillTrend,
		TableSalaryDistribution, TableTopPaidSkills, TableTopDemandedSkills,
		TableSkillOpportunities,
	}, names)
}

func TestDemandViews(t *testing.T) {
	views := DemandViews(sampleDemand())
	require.Len(t, views, 2)

	assert.Nil(t, views[0].Chart)
	assert.Equal(t, []any{"Data Analyst", 1200}, views[0].Table.Rows[0])

	skills := views[1].Table
	assert.Equal(t, []string{"title", "skill", "postings", "percent"}, skills.Headers())
	assert.Equal(t, []any{"Data Engineer", "python", 560, 70.0}, skills.Rows[2])
	require.NotNil(t, views[1].Chart)
	assert.Equal(t, ChartBar, views[1].Chart.Kind)
	assert.True(t, views[1].Chart.PercentAxis)
}

func TestTrendViews(t *testing.T) {
	views := TrendViews(sampleTrend())
	require.Len(t, views, 2)

	assert.Equal(t, []any{"2023-02", 20}, views[0].Table.Rows[1])
	assert.Equal(t, 4, views[1].Table.Len())
	assert.Equal(t, []any{"excel", "2023-02", "Feb", 0, 0.0}, views[1].Table.Rows[3])
	assert.Equal(t, "skill", views[1].Chart.Group)
	assert.Equal(t, "month_label", views[1].Chart.X)
}

func TestPayViews(t *testing.T) {
	views := PayViews(samplePay())
	require.Len(t, views, 3)

	dist := views[0].Table
	assert.Equal(t, []string{"title", "postings", BoxMin, BoxQ1, BoxMedian, BoxQ3, BoxMax}, dist.Headers())
	assert.Equal(t, ChartBox, views[0].Chart.Kind)
	assert.Equal(t, []any{"spark", 120000.0, 4}, views[1].Table.Rows[0])
	assert.Equal(t, TableTopDemandedSkills, views[2].Table.Name)
}

func TestOptimalViews(t *testing.T) {
	views := OptimalViews(sampleOptimal())
	require.Len(t, views, 1)

	opps := views[0].Table
	assert.Contains(t, opps.Title, "5%")
	assert.Equal(t, []any{"tableau", "analyst_tools", 25, 25.0, 92000.0}, opps.Rows[1])
	assert.Equal(t, ChartScatter, views[0].Chart.Kind)
}
