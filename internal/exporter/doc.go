// Package exporter writes run artifacts to disk.
//
// CSVWriter handles plain and streaming CSV output with a UTF-8 BOM for
// Excel. TableExporter writes every presenter table to tables/<name>.csv.
// The manifest records the run ID, version, the input's BLAKE2b-256 digest,
// analysis options, the cleaning report and the artifacts produced.
//
// Example usage:
//
//	paths, _ := config.GetPaths("output")
//	tables := exporter.NewTableExporter(paths, logger, metrics)
//	files, err := tables.Export(ctx, views)
package exporter
