// Package shared holds helpers used across skillpulse packages.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log records and builders for job posting fixtures (in-memory postings, CSV
// text and files, XLSX workbooks).
package shared
