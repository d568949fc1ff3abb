package presenter

import (
	"fmt"

	"skillpulse/internal/dataprocessing"
	"skillpulse/pkg/contracts/domain"
)

// Table names, also used for CSV file and sheet names
const (
	TableTitleCounts        = "title_counts"
	TableSkillDemand        = "skill_demand"
	TableMonthlyPostings    = "monthly_postings"
	TableSkillTrend         = "skill_trend"
	TableSalaryDistribution = "salary_distribution"
	TableTopPaidSkills      = "top_paid_skills"
	TableTopDemandedSkills  = "top_demanded_skills"
	TableSkillOpportunities = "skill_opportunities"
)

// DemandViews lays out the skill demand answer
func DemandViews(r dataprocessing.DemandResult) []View {
	titles := NewTable(TableTitleCounts, "Postings per job title", Text("title"), Integer("postings"))
	for _, tc := range r.Titles {
		titles.AddRow(tc.Title, tc.Count)
	}

	skills := NewTable(TableSkillDemand, "Top skills for the most popular titles",
		Text("title"), Text("skill"), Integer("postings"), Percent("percent"))
	for _, f := range r.Skills {
		skills.AddRow(f.Title, f.Skill, f.Count, f.Percent)
	}

	return []View{
		{Question: domain.QuestionDemand, Table: titles},
		{Question: domain.QuestionDemand, Table: skills, Chart: &ChartSpec{
			Kind:        ChartBar,
			Title:       "Likelihood of skills requested",
			X:           "skill",
			Y:           "percent",
			Group:       "title",
			PercentAxis: true,
			Horizontal:  true,
		}},
	}
}

// TrendViews lays out the skill trend answer
func TrendViews(r dataprocessing.TrendResult) []View {
	months := NewTable(TableMonthlyPostings, fmt.Sprintf("Dated %s postings per month", r.Title),
		Text("month"), Integer("postings"))
	for _, mc := range r.Months {
		months.AddRow(mc.Month.String(), mc.Count)
	}

	trends := NewTable(TableSkillTrend, fmt.Sprintf("Monthly skill share for %s", r.Title),
		Text("skill"), Text("month"), Text("month_label"), Integer("postings"), Percent("percent"))
	for _, tr := range r.Trends {
		trends.AddRow(tr.Skill, tr.Month.String(), tr.Month.Label(), tr.Count, tr.Percent)
	}

	return []View{
		{Question: domain.QuestionTrend, Table: months},
		{Question: domain.QuestionTrend, Table: trends, Chart: &ChartSpec{
			Kind:        ChartLine,
			Title:       fmt.Sprintf("Trending top skills for %s", r.Title),
			X:           "month_label",
			Y:           "percent",
			Group:       "skill",
			PercentAxis: true,
		}},
	}
}

// PayViews lays out the salary answer
func PayViews(r dataprocessing.PayResult) []View {
	dists := NewTable(TableSalaryDistribution, "Salary distribution per job title",
		Text("title"), Integer("postings"),
		Currency(BoxMin), Currency(BoxQ1), Currency(BoxMedian), Currency(BoxQ3), Currency(BoxMax))
	for _, d := range r.Distributions {
		dists.AddRow(d.Title, d.Count, d.Min, d.Q1, d.Median, d.Q3, d.Max)
	}

	skillTable := func(name, title string, rows []domain.SkillSalary) *Table {
		t := NewTable(name, title, Text("skill"), Currency("median_salary"), Integer("postings"))
		for _, s := range rows {
			t.AddRow(s.Skill, s.MedianSalary, s.Count)
		}
		return t
	}

	topPaid := skillTable(TableTopPaidSkills, fmt.Sprintf("Highest paid skills for %s", r.Title), r.TopPaid)
	topDemanded := skillTable(TableTopDemandedSkills, fmt.Sprintf("Most in-demand skills for %s", r.Title), r.MostDemanded)

	salaryBar := func(title string) *ChartSpec {
		return &ChartSpec{
			Kind:         ChartBar,
			Title:        title,
			X:            "skill",
			Y:            "median_salary",
			CurrencyAxis: true,
			Horizontal:   true,
		}
	}

	return []View{
		{Question: domain.QuestionPay, Table: dists, Chart: &ChartSpec{
			Kind:         ChartBox,
			Title:        "Salary distributions of data jobs",
			X:            "title",
			CurrencyAxis: true,
		}},
		{Question: domain.QuestionPay, Table: topPaid, Chart: salaryBar(topPaid.Title)},
		{Question: domain.QuestionPay, Table: topDemanded, Chart: salaryBar(topDemanded.Title)},
	}
}

// OptimalViews lays out the optimal skill answer
func OptimalViews(r dataprocessing.OptimalResult) []View {
	opps := NewTable(TableSkillOpportunities,
		fmt.Sprintf("Demand versus salary for %s skills at or above %g%% demand", r.Title, r.MinDemandPercent),
		Text("skill"), Text("technology"), Integer("postings"), Percent("demand_percent"), Currency("median_salary"))
	for _, o := range r.Opportunities {
		opps.AddRow(o.Skill, o.Technology, o.Count, o.DemandPercent, o.MedianSalary)
	}

	return []View{
		{Question: domain.QuestionOptimal, Table: opps, Chart: &ChartSpec{
			Kind:         ChartScatter,
			Title:        fmt.Sprintf("Most optimal skills for %s", r.Title),
			X:            "demand_percent",
			Y:            "median_salary",
			Group:        "technology",
			CurrencyAxis: true,
		}},
	}
}
