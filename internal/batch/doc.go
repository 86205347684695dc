// Package batch orchestrates grade extraction runs.
//
// A Runner ties the other internal packages together: it discovers xlsx
// workbooks under the input directory, fans extraction and filename
// classification out across a bounded worker pool, folds results into a
// RunSummary in discovery order so reports stay deterministic regardless
// of worker count, routes files without usable data or classification
// into the not-found area, and writes one CSV per (term, class) group
// into the extracted area.
//
// Two modes exist, matching the two input shapes:
//
//   - Run processes a directory tree and groups output by term id and
//     class code.
//   - RunFile processes a single workbook and appends to the shared
//     grades_extract.csv, with no classification or moving.
//
// Failures inside a single workbook (unreadable file, no qualifying
// columns) never abort a run; they classify the file into the no-grades
// bucket. Only discovery, output writing and cancellation are fatal, and
// those surface as *RunError with a kind and stage.
//
// RenderSummary prints the operator-facing report for a completed run.
package batch
