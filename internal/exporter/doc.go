// Package exporter provides CSV export functionality for extracted
// grade records.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// append mode, and UTF-8 BOM for Excel compatibility. Paths resolve
// against the writer's output directory.
//
// GroupExporter: Writes grade records grouped by term id and class
// code, one grades_extract_{termid}_{classcode}.csv per group, and
// maintains the accumulating grades_extract.csv that single-file runs
// append to.
//
// Example usage:
//
//	exp := exporter.NewGroupExporter("data/extracted")
//
//	// Directory mode: one CSV per (term, class) group
//	reports, err := exp.ExportGrouped(results)
//
//	// Single-file mode: extend the shared CSV
//	path, err := exp.AppendRecords(records)
package exporter
