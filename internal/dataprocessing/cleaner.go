package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	apperrors "skillpulse/internal/errors"
	"skillpulse/pkg/contracts/domain"
)

// Drop reasons reported in CleanReport.Dropped
const (
	DropMalformedSkills = "malformed_skills"
	DropMissingTitle    = "missing_title"
	DropMalformedRecord = "malformed_record"
)

// CleanReport accounts for every raw row read
type CleanReport struct {
	RowsRead               int `json:"rows_read"`
	Kept                   int `json:"kept"`
	DroppedMalformed       int `json:"dropped_malformed_skills"`
	DroppedMissingTitle    int `json:"dropped_missing_title"`
	DroppedMalformedRecord int `json:"dropped_malformed_record"`
	MalformedDates         int `json:"malformed_dates"`
	InvalidSalaries        int `json:"invalid_salaries"`
	MalformedTechnology    int `json:"malformed_technology"`
	FilteredByCountry      int `json:"filtered_by_country"`
	MissingSalary          int `json:"missing_salary"`
}

// DroppedRows returns the number of rows removed by cleaning
func (r CleanReport) DroppedRows() int {
	return r.DroppedMalformed + r.DroppedMissingTitle + r.DroppedMalformedRecord
}

// Dropped returns dropped row counts by reason
func (r CleanReport) Dropped() map[string]int {
	return map[string]int{
		DropMalformedSkills: r.DroppedMalformed,
		DropMissingTitle:    r.DroppedMissingTitle,
		DropMalformedRecord: r.DroppedMalformedRecord,
	}
}

const ctxCheckInterval = 1024

// cleanRows converts raw rows into postings.
// Rows with a malformed skill list or no title are dropped. Rows with an
// unparseable date are kept without a date. Invalid salaries become absent.
func cleanRows(ctx context.Context, columns columnIndex, rows [][]string, lines []int, logger *slog.Logger) ([]domain.JobPosting, CleanReport, error) {
	var report CleanReport
	postings := make([]domain.JobPosting, 0, len(rows))

	_, hasTypeSkills := columns[ColTypeSkills]

	for i, row := range rows {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, report, err
			}
		}

		// Line numbers count the header as line 1
		line := i + 2
		if i < len(lines) {
			line = lines[i]
		}
		report.RowsRead++

		title := columns.get(row, ColTitle)
		if isMissing(title) {
			report.DroppedMissingTitle++
			logger.DebugContext(ctx, "Dropping row without title", slog.Int("line", line))
			continue
		}

		skills, err := ParseSkills(columns.get(row, ColSkills))
		if err != nil {
			report.DroppedMalformed++
			logger.WarnContext(ctx, "Dropping row with malformed skill list",
				slog.Int("line", line),
				slog.String("error", apperrors.NewMalformedRowError(line, ColSkills, err).Error()))
			continue
		}

		posting := domain.JobPosting{
			Title:   title,
			Country: columns.get(row, ColCountry),
			Skills:  skills,
		}

		if posted, err := ParsePostedDate(columns.get(row, ColPosted)); err == nil {
			posting.Posted = &posted
		} else {
			report.MalformedDates++
			logger.DebugContext(ctx, "Keeping row without posted date",
				slog.Int("line", line),
				slog.String("error", err.Error()))
		}

		salary, err := ParseSalary(columns.get(row, ColSalary))
		if err != nil {
			report.InvalidSalaries++
			logger.DebugContext(ctx, "Ignoring invalid salary",
				slog.Int("line", line),
				slog.String("error", err.Error()))
		}
		posting.Salary = salary

		if hasTypeSkills {
			techs, err := ParseTechnologySkills(columns.get(row, ColTypeSkills))
			if err != nil {
				report.MalformedTechnology++
				logger.DebugContext(ctx, "Ignoring malformed technology map",
					slog.Int("line", line),
					slog.String("error", err.Error()))
			}
			posting.Technologies = techs
		}

		postings = append(postings, posting)
	}

	report.Kept = len(postings)
	return postings, report, nil
}

// normalizeKey is the comparison form for country and title matching
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FilterCountry returns the postings whose country equals country,
// ignoring case and surrounding space. The input is not modified.
func FilterCountry(postings []domain.JobPosting, country string) []domain.JobPosting {
	target := normalizeKey(country)
	return filterPostings(postings, func(p domain.JobPosting) bool {
		return normalizeKey(p.Country) == target
	})
}

// FilterTitle returns the postings whose title equals title,
// ignoring case and surrounding space. The input is not modified.
func FilterTitle(postings []domain.JobPosting, title string) []domain.JobPosting {
	target := normalizeKey(title)
	return filterPostings(postings, func(p domain.JobPosting) bool {
		return normalizeKey(p.Title) == target
	})
}

// FilterTitles keeps postings whose title is one of titles
func FilterTitles(postings []domain.JobPosting, titles []string) []domain.JobPosting {
	wanted := make(map[string]bool, len(titles))
	for _, t := range titles {
		wanted[normalizeKey(t)] = true
	}
	return filterPostings(postings, func(p domain.JobPosting) bool {
		return wanted[normalizeKey(p.Title)]
	})
}

// Salaried returns the postings that report a salary
func Salaried(postings []domain.JobPosting) []domain.JobPosting {
	return filterPostings(postings, func(p domain.JobPosting) bool {
		return p.Salary.Valid
	})
}

// Dated returns the postings with a posted date
func Dated(postings []domain.JobPosting) []domain.JobPosting {
	return filterPostings(postings, domain.JobPosting.HasDate)
}

func filterPostings(postings []domain.JobPosting, keep func(domain.JobPosting) bool) []domain.JobPosting {
	out := make([]domain.JobPosting, 0, len(postings))
	for _, p := range postings {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
