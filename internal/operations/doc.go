// Package operations runs the analysis pipeline as a sequence of steps.
//
// Core Components:
//
// Manager: Runs registered steps in order against a shared OperationState.
// Each step gets its own span, a duration metric and start/complete log
// records. When a step fails the remaining steps are marked skipped.
//
// Step: A single unit of work. The pipeline uses LoadStep (read, clean and
// filter), AnalyzeStep (aggregate and rank), PresentStep (tables, workbook
// and console) and ManifestStep.
//
// State: OperationState carries the request, the cleaned dataset, the
// results and the artifacts written, plus the status of every step.
package operations
