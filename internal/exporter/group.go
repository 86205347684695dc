package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gradex/pkg/contracts/domain"
)

// AppendFilename is the accumulating CSV that single-file runs append to.
const AppendFilename = "grades_extract.csv"

// recordHeaders is the column set of every exported grades CSV.
var recordHeaders = []string{"filename", "student_id", "grade"}

// GroupExporter writes extracted grade records as CSV files, one per
// (term id, class code) group.
type GroupExporter struct {
	csvWriter *CSVWriter
}

// NewGroupExporter creates a group exporter writing into outputDir.
func NewGroupExporter(outputDir string) *GroupExporter {
	return &GroupExporter{
		csvWriter: NewCSVWriter(outputDir),
	}
}

// ExportGrouped merges the records of all successfully classified files,
// groups them by term id and class code, and writes one CSV per group
// named grades_extract_{termid}_{classcode}.csv. Within a group, record
// order follows the order of the results and of the rows inside each
// file; group files are written in sorted key order. Returns one report
// per written file.
func (g *GroupExporter) ExportGrouped(results []domain.FileResult) ([]domain.GroupReport, error) {
	// Group records by (term id, class code)
	classByKey := make(map[string]domain.Classification)
	recordsByKey := make(map[string][]domain.GradeRecord)
	for _, result := range results {
		if result.Outcome != domain.OutcomeSuccess {
			continue
		}
		key := result.Classification.GroupKey()
		classByKey[key] = result.Classification
		recordsByKey[key] = append(recordsByKey[key], result.Records...)
	}

	// Get sorted group keys for deterministic output
	var keys []string
	for key := range recordsByKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var reports []domain.GroupReport
	for _, key := range keys {
		records := recordsByKey[key]
		filename := fmt.Sprintf("grades_extract_%s.csv", key)

		if err := g.csvWriter.WriteSimpleCSV(filename, recordHeaders, recordRows(records)); err != nil {
			return reports, fmt.Errorf("failed to export group %s: %w", key, err)
		}

		class := classByKey[key]
		reports = append(reports, domain.GroupReport{
			TermID:    class.TermID,
			ClassCode: class.ClassCode,
			Records:   len(records),
			Path:      g.csvWriter.resolvePath(filename),
		})

		slog.Info("Wrote group CSV",
			slog.String("file", filename),
			slog.Int("records", len(records)))
	}

	return reports, nil
}

// AppendRecords adds records to the accumulating grades_extract.csv in
// the exporter's directory. The header row is written only when the
// file does not exist yet, so repeated runs keep extending one file.
// Returns the full path of the target file.
func (g *GroupExporter) AppendRecords(records []domain.GradeRecord) (string, error) {
	fullPath := g.csvWriter.resolvePath(AppendFilename)

	_, err := os.Stat(fullPath)
	switch {
	case os.IsNotExist(err):
		if err := g.csvWriter.WriteSimpleCSV(AppendFilename, recordHeaders, recordRows(records)); err != nil {
			return fullPath, err
		}
	case err != nil:
		return fullPath, fmt.Errorf("failed to stat %s: %w", fullPath, err)
	default:
		if err := g.csvWriter.AppendToCSV(AppendFilename, recordRows(records)); err != nil {
			return fullPath, err
		}
	}

	slog.Info("Appended grade records",
		slog.String("file", fullPath),
		slog.Int("records", len(records)))
	return fullPath, nil
}

// recordRows converts grade records to CSV row format
func recordRows(records []domain.GradeRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.SourceFile, r.StudentID, r.Grade})
	}
	return rows
}
