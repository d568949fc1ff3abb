// Package dataprocessing loads job postings and computes the skill demand and
// salary tables behind each report question.
//
// # Data Flow
//
//	CSV/XLSX → LoadFile → Dataset (cleaned, read-only) → Aggregations → Rank → Results
//
// # Cleaning
//
// LoadFile resolves columns by header name and converts each row into a
// domain.JobPosting:
//
//   - a row with a malformed job_skills list is dropped and logged
//   - a row with an unparseable job_posted_date is kept without a date and is
//     left out of monthly views only
//   - a missing salary is not an error; the posting counts toward demand but
//     not toward salary statistics
//
// CleanReport accounts for every row read.
//
// # Aggregation and Ranking
//
// Aggregations such as SkillDemandByTitle and SkillSalaries never modify their
// input. Rank selects the top entries per group with a deterministic order:
// value, then label, then input position.
//
// Usage:
//
//	ds, err := dataprocessing.LoadFile(ctx, "data/data_jobs.csv", dataprocessing.LoadOptions{Country: "United States"})
//	if err != nil {
//	    return err
//	}
//	demand := dataprocessing.AnalyzeDemand(ds.Postings, dataprocessing.DefaultAnalysisOptions())
package dataprocessing
