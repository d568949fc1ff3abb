package dataprocessing

import (
	"sort"

	"skillpulse/pkg/contracts/domain"
)

// Aggregations never modify their input and always return fresh slices.
// Groups and skills appear in first-appearance order unless stated otherwise.

// orderedCounter counts keys while remembering first-appearance order
type orderedCounter struct {
	keys   []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// TitlePostingCounts counts postings per title, most frequent first, ties by title
func TitlePostingCounts(postings []domain.JobPosting) []domain.TitleCount {
	counter := newOrderedCounter()
	for _, p := range postings {
		counter.add(p.Title)
	}

	out := make([]domain.TitleCount, 0, len(counter.keys))
	for _, title := range counter.keys {
		out = append(out, domain.TitleCount{Title: title, Count: counter.counts[title]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// SkillDemandByTitle computes, per title, how many postings list each skill
// and what share of the title's postings that is
func SkillDemandByTitle(postings []domain.JobPosting) []domain.SkillFrequency {
	titles := newOrderedCounter()
	skillsByTitle := make(map[string]*orderedCounter)

	for _, p := range postings {
		titles.add(p.Title)
		skills, ok := skillsByTitle[p.Title]
		if !ok {
			skills = newOrderedCounter()
			skillsByTitle[p.Title] = skills
		}
		for _, skill := range p.Skills.Items() {
			skills.add(skill)
		}
	}

	var out []domain.SkillFrequency
	for _, title := range titles.keys {
		total := titles.counts[title]
		skills := skillsByTitle[title]
		for _, skill := range skills.keys {
			count := skills.counts[skill]
			out = append(out, domain.SkillFrequency{
				Title:   title,
				Skill:   skill,
				Count:   count,
				Percent: percent(count, total),
			})
		}
	}
	return out
}

// MonthlyPostingCounts counts dated postings per month in month order
func MonthlyPostingCounts(postings []domain.JobPosting) []domain.MonthCount {
	counts := make(map[domain.Month]int)
	for _, p := range postings {
		if m, ok := p.Month(); ok {
			counts[m]++
		}
	}

	out := make([]domain.MonthCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, domain.MonthCount{Month: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out
}

// SkillTrendByMonth computes, per month, the share of that month's postings
// listing each skill. Postings without a date are ignored. There is one row per
// (skill, month) pair with at least one posting, ordered by month then skill.
func SkillTrendByMonth(postings []domain.JobPosting) []domain.SkillTrend {
	type key struct {
		skill string
		month domain.Month
	}

	monthTotals := make(map[domain.Month]int)
	counts := make(map[key]int)

	for _, p := range postings {
		m, ok := p.Month()
		if !ok {
			continue
		}
		monthTotals[m]++
		for _, skill := range p.Skills.Items() {
			counts[key{skill, m}]++
		}
	}

	out := make([]domain.SkillTrend, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.SkillTrend{
			Skill:   k.skill,
			Month:   k.month,
			Count:   n,
			Percent: percent(n, monthTotals[k.month]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month.Before(out[j].Month)
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}

// salariesBySkill collects reported salaries per skill in first-appearance order
func salariesBySkill(postings []domain.JobPosting) ([]string, map[string][]float64) {
	var skills []string
	salaries := make(map[string][]float64)
	for _, p := range postings {
		amount, ok := p.Salary.Get()
		if !ok {
			continue
		}
		for _, skill := range p.Skills.Items() {
			if _, seen := salaries[skill]; !seen {
				skills = append(skills, skill)
			}
			salaries[skill] = append(salaries[skill], amount)
		}
	}
	return skills, salaries
}

// SkillSalaries computes the median salary per skill over postings that report
// a salary. Count is the number of those postings.
func SkillSalaries(postings []domain.JobPosting) []domain.SkillSalary {
	skills, salaries := salariesBySkill(postings)

	out := make([]domain.SkillSalary, 0, len(skills))
	for _, skill := range skills {
		values := salaries[skill]
		out = append(out, domain.SkillSalary{
			Skill:        skill,
			MedianSalary: Median(values),
			Count:        len(values),
		})
	}
	return out
}

// TitleSalaryDistributions computes a five-number salary summary per title over
// postings that report a salary
func TitleSalaryDistributions(postings []domain.JobPosting) []domain.TitleSalaryDistribution {
	var titles []string
	salaries := make(map[string][]float64)
	for _, p := range postings {
		amount, ok := p.Salary.Get()
		if !ok {
			continue
		}
		if _, seen := salaries[p.Title]; !seen {
			titles = append(titles, p.Title)
		}
		salaries[p.Title] = append(salaries[p.Title], amount)
	}

	out := make([]domain.TitleSalaryDistribution, 0, len(titles))
	for _, title := range titles {
		values := salaries[title]
		lo, q1, med, q3, hi := FiveNumberSummary(values)
		out = append(out, domain.TitleSalaryDistribution{
			Title:  title,
			Count:  len(values),
			Min:    lo,
			Q1:     q1,
			Median: med,
			Q3:     q3,
			Max:    hi,
		})
	}
	return out
}

// SkillOpportunities joins demand and pay per skill. DemandPercent is the share
// of all postings listing the skill; MedianSalary covers only postings that
// report a salary and is 0 when none do.
func SkillOpportunities(postings []domain.JobPosting) []domain.SkillOpportunity {
	skills := newOrderedCounter()
	technology := make(map[string]string)

	for _, p := range postings {
		for _, skill := range p.Skills.Items() {
			skills.add(skill)
			if tech := p.TechnologyOf(skill); tech != domain.UnknownTechnology && technology[skill] == "" {
				technology[skill] = tech
			}
		}
	}

	_, salaries := salariesBySkill(postings)

	out := make([]domain.SkillOpportunity, 0, len(skills.keys))
	for _, skill := range skills.keys {
		tech := technology[skill]
		if tech == "" {
			tech = domain.UnknownTechnology
		}
		values := salaries[skill]
		out = append(out, domain.SkillOpportunity{
			Skill:         skill,
			Technology:    tech,
			Count:         skills.counts[skill],
			SalaryCount:   len(values),
			DemandPercent: percent(skills.counts[skill], len(postings)),
			MedianSalary:  Median(values),
		})
	}
	return out
}
