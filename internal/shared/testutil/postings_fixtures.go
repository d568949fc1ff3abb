package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"skillpulse/pkg/contracts/domain"
)

// PostingHeader is the column order written by the fixture builders
var PostingHeader = []string{
	"job_title_short", "job_title", "job_country", "job_posted_date",
	"salary_year_avg", "job_skills", "job_type_skills",
}

// PostingRow is one raw input row. Fields hold cell text as it appears in the file.
type PostingRow struct {
	Title      string
	Country    string
	Posted     string
	Salary     string
	Skills     string
	TypeSkills string
}

// Row returns a US posting with the given title, skill literal, salary and date
func Row(title, skills, salary, posted string) PostingRow {
	return PostingRow{
		Title:   title,
		Country: "United States",
		Posted:  posted,
		Salary:  salary,
		Skills:  skills,
	}
}

func (r PostingRow) record() []string {
	return []string{r.Title, r.Title + " II", r.Country, r.Posted, r.Salary, r.Skills, r.TypeSkills}
}

// PostingsCSV renders rows as CSV text with a header
func PostingsCSV(t *testing.T, rows ...PostingRow) string {
	t.Helper()

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(PostingHeader); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, r := range rows {
		if err := w.Write(r.record()); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	return b.String()
}

// WritePostingsCSV writes rows to dir/name and returns the path
func WritePostingsCSV(t *testing.T, dir, name string, rows ...PostingRow) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(PostingsCSV(t, rows...)), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// WritePostingsWorkbook writes rows to an XLSX file in sheet and returns the path
func WritePostingsWorkbook(t *testing.T, dir, name, sheet string, rows ...PostingRow) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheet)

	write := func(rowNum int, values []string) {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	write(1, PostingHeader)
	for i, r := range rows {
		write(i+2, r.record())
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// Posting builds a cleaned posting. A zero salary means not reported and an
// empty posted string means no date.
func Posting(title string, skills []string, salary float64, posted string) domain.JobPosting {
	p := domain.JobPosting{
		Title:   title,
		Country: "United States",
		Skills:  domain.NewSkillSet(skills...),
	}
	if salary > 0 {
		p.Salary = domain.NewSalary(salary)
	}
	if posted != "" {
		t, err := time.Parse("2006-01-02", posted)
		if err != nil {
			panic(err)
		}
		p.Posted = &t
	}
	return p
}
