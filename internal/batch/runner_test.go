package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"

	"gradex/internal/shared/testutil"
	"gradex/pkg/contracts/domain"
)

// TestMain ensures the worker pool leaks no goroutines across runs.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// captureLogs swaps the default logger for a buffered one for the
// duration of the test.
func captureLogs(t *testing.T) *testutil.BufferedSlogHandler {
	t.Helper()

	logger, handler := testutil.NewTestLogger(t)
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })
	return handler
}

// writeWorkbook fabricates a grade sheet with a name column, numeric id
// column and grade column.
func writeWorkbook(t *testing.T, dir, name string, ids []int, grades []string) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Student Name"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "ID"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "Grade"))
	for i := range ids {
		row := strconv.Itoa(i + 2)
		require.NoError(t, f.SetCellValue(sheet, "A"+row, "Student"))
		require.NoError(t, f.SetCellValue(sheet, "B"+row, ids[i]))
		require.NoError(t, f.SetCellValue(sheet, "C"+row, grades[i]))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// writeEmptyWorkbook fabricates a workbook without any grade data.
func writeEmptyWorkbook(t *testing.T, dir, name string) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue(f.GetSheetName(0), "A1", "nothing to see here"))

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeTerms(t *testing.T, dir string, termIDs ...string) string {
	t.Helper()

	path := filepath.Join(dir, "terms.csv")
	content := "termid\n" + strings.Join(termIDs, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readCSVLines(t *testing.T, path string) []string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := strings.TrimPrefix(string(content), "\ufeff")
	return strings.Split(strings.TrimSpace(text), "\n")
}

func TestNewRunner(t *testing.T) {
	t.Run("requires input directory", func(t *testing.T) {
		_, err := NewRunner(Options{})
		require.Error(t, err)
		assert.Equal(t, ErrorKindValidation, GetErrorKind(err))
	})

	t.Run("defaults and clamps", func(t *testing.T) {
		dir := t.TempDir()

		r, err := NewRunner(Options{InputDir: dir, Workers: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, r.opts.Workers)
		assert.Equal(t, dir, r.opts.OutputDir, "output defaults to the input directory")

		r, err = NewRunner(Options{InputDir: dir, Workers: 10000})
		require.NoError(t, err)
		assert.Equal(t, 64, r.opts.Workers)
	})

	t.Run("missing terms file is not fatal", func(t *testing.T) {
		dir := t.TempDir()
		captureLogs(t)

		_, err := NewRunner(Options{InputDir: dir, TermsFile: filepath.Join(dir, "no-such-terms.csv")})
		assert.NoError(t, err)
	})

	t.Run("malformed terms file is fatal", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "terms.csv")
		require.NoError(t, os.WriteFile(path, []byte("termid\n\"unterminated\n"), 0644))

		_, err := NewRunner(Options{InputDir: dir, TermsFile: path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load term reference")
	})
}

func TestRunnerRun(t *testing.T) {
	logs := captureLogs(t)

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	termsPath := writeTerms(t, t.TempDir(), "2023T2E", "2022T4E")

	writeWorkbook(t, inputDir, "2023T2E-EHSS-101.xlsx", []int{14354, 14355, 14356}, []string{"A", "B", "C"})
	writeWorkbook(t, inputDir, "2022T4E-COMP-202.xlsx", []int{20001, 20002, 20003}, []string{"F", "D", "A"})
	writeWorkbook(t, inputDir, "untagged-roster.xlsx", []int{30001, 30002, 30003}, []string{"A", "A", "A"})
	writeWorkbook(t, inputDir, "2023T2E-notes.xlsx", []int{40001, 40002, 40003}, []string{"B", "B", "B"})
	writeEmptyWorkbook(t, inputDir, "2023T2E-MATH-303.xlsx")

	runner, err := NewRunner(Options{
		InputDir:     inputDir,
		OutputDir:    outputDir,
		TermsFile:    termsPath,
		Workers:      4,
		MoveNotFound: true,
	})
	require.NoError(t, err)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.FilesProcessed)
	assert.Equal(t, 4, summary.FilesWithGrades)
	assert.Equal(t, []string{"2023T2E-MATH-303.xlsx"}, summary.NoGrades)
	assert.Equal(t, []string{"untagged-roster.xlsx"}, summary.NoTermID)
	assert.Equal(t, []string{"2023T2E-notes.xlsx"}, summary.NoClassCode)
	assert.Equal(t, 12, summary.TotalRecords, "records of unclassifiable files still count")
	assert.Len(t, summary.Moved, 3)

	require.Len(t, summary.Groups, 2)
	assert.Equal(t, "2022T4E", summary.Groups[0].TermID)
	assert.Equal(t, "COMP-202", summary.Groups[0].ClassCode)
	assert.Equal(t, 3, summary.Groups[0].Records)
	assert.Equal(t, "2023T2E", summary.Groups[1].TermID)
	assert.Equal(t, "EHSS-101", summary.Groups[1].ClassCode)

	// Group CSVs carry the file stem and normalized values.
	lines := readCSVLines(t, filepath.Join(outputDir, "extracted", "grades_extract_2023T2E_EHSS-101.csv"))
	require.Len(t, lines, 4)
	assert.Equal(t, "filename,student_id,grade", lines[0])
	assert.Equal(t, "2023T2E-EHSS-101,14354,A", lines[1])

	// Unclassifiable files moved out of the input tree; successes stay.
	assert.FileExists(t, filepath.Join(outputDir, "not-found", "2023T2E-MATH-303.xlsx"))
	assert.FileExists(t, filepath.Join(outputDir, "not-found", "untagged-roster.xlsx"))
	assert.FileExists(t, filepath.Join(outputDir, "not-found", "2023T2E-notes.xlsx"))
	assert.NoFileExists(t, filepath.Join(inputDir, "untagged-roster.xlsx"))
	assert.FileExists(t, filepath.Join(inputDir, "2023T2E-EHSS-101.xlsx"))

	assert.True(t, logs.ContainsMessage("Found xlsx files to process"))
	assert.True(t, logs.ContainsMessage("No grades found"))
}

func TestRunnerRunWorkerCountInvariance(t *testing.T) {
	captureLogs(t)

	build := func(t *testing.T) (string, string, string) {
		inputDir := t.TempDir()
		outputDir := t.TempDir()
		termsPath := writeTerms(t, t.TempDir(), "2023T2E", "2022T4E")
		writeWorkbook(t, inputDir, "2023T2E-EHSS-101.xlsx", []int{14354, 14355, 14356}, []string{"A", "B", "C"})
		writeWorkbook(t, inputDir, "2023T2E-EHSS-101 retake.xlsx", []int{14357, 14358, 14359}, []string{"D", "F", "A"})
		writeWorkbook(t, inputDir, "2022T4E-COMP-202.xlsx", []int{20001, 20002, 20003}, []string{"F", "D", "A"})
		writeEmptyWorkbook(t, inputDir, "junk.xlsx")
		return inputDir, outputDir, termsPath
	}

	run := func(t *testing.T, workers int) (*domain.RunSummary, map[string][]string) {
		inputDir, outputDir, termsPath := build(t)
		runner, err := NewRunner(Options{
			InputDir:     inputDir,
			OutputDir:    outputDir,
			TermsFile:    termsPath,
			Workers:      workers,
			MoveNotFound: true,
		})
		require.NoError(t, err)

		summary, err := runner.Run(context.Background())
		require.NoError(t, err)

		csvs := make(map[string][]string)
		for _, g := range summary.Groups {
			csvs[filepath.Base(g.Path)] = readCSVLines(t, g.Path)
		}
		return summary, csvs
	}

	sequential, seqCSVs := run(t, 1)
	parallel, parCSVs := run(t, 4)

	// The two fixtures live in different temp dirs; blank the paths so the
	// comparison covers counts, buckets, moves, groups and row order.
	sequential.ExtractedDir, parallel.ExtractedDir = "", ""
	sequential.NotFoundDir, parallel.NotFoundDir = "", ""
	for i := range sequential.Groups {
		sequential.Groups[i].Path = filepath.Base(sequential.Groups[i].Path)
	}
	for i := range parallel.Groups {
		parallel.Groups[i].Path = filepath.Base(parallel.Groups[i].Path)
	}

	assert.Equal(t, sequential, parallel, "worker count must not change the run's results")
	assert.Equal(t, seqCSVs, parCSVs, "worker count must not change written CSV content")
}

func TestRunnerRunOutputInsideInput(t *testing.T) {
	captureLogs(t)

	dir := t.TempDir()
	writeWorkbook(t, dir, "2023T2E-EHSS-101.xlsx", []int{14354, 14355, 14356}, []string{"A", "B", "C"})
	writeEmptyWorkbook(t, dir, "junk.xlsx")

	// No terms file: pattern-shaped term ids are accepted as-is.
	runner, err := NewRunner(Options{
		InputDir:     dir,
		TermsFile:    filepath.Join(dir, "missing-terms.csv"),
		Workers:      1,
		MoveNotFound: true,
	})
	require.NoError(t, err)

	first, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.FilesProcessed)
	assert.Len(t, first.Moved, 1)
	assert.FileExists(t, filepath.Join(dir, "not-found", "junk.xlsx"))

	// A second run does not rediscover files already routed into the
	// run's own output areas.
	second, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.FilesProcessed)
	assert.Empty(t, second.Moved)
	require.Len(t, second.Groups, 1)
	assert.Equal(t, "2023T2E", second.Groups[0].TermID)
}

func TestRunnerRunEmptyDir(t *testing.T) {
	captureLogs(t)

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	runner, err := NewRunner(Options{InputDir: inputDir, OutputDir: outputDir, Workers: 2})
	require.NoError(t, err)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.FilesProcessed)
	assert.Empty(t, summary.Groups)
	assert.DirExists(t, filepath.Join(outputDir, "extracted"))
	assert.DirExists(t, filepath.Join(outputDir, "not-found"))
}

func TestRunnerRunMoveDisabled(t *testing.T) {
	captureLogs(t)

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeEmptyWorkbook(t, inputDir, "junk.xlsx")

	runner, err := NewRunner(Options{InputDir: inputDir, OutputDir: outputDir, Workers: 1})
	require.NoError(t, err)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"junk.xlsx"}, summary.NoGrades)
	assert.Empty(t, summary.Moved)
	assert.FileExists(t, filepath.Join(inputDir, "junk.xlsx"))
	assert.NoFileExists(t, filepath.Join(outputDir, "not-found", "junk.xlsx"))
}

func TestRunnerRunCancelled(t *testing.T) {
	captureLogs(t)

	inputDir := t.TempDir()
	writeWorkbook(t, inputDir, "2023T2E-EHSS-101.xlsx", []int{14354, 14355, 14356}, []string{"A", "B", "C"})

	runner, err := NewRunner(Options{InputDir: inputDir, OutputDir: t.TempDir(), Workers: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, ErrorKindCancellation, GetErrorKind(err))
}

func TestRunnerRunTermReference(t *testing.T) {
	captureLogs(t)

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	// Term ids that match no pattern are still recovered when the
	// reference set knows them.
	termsPath := writeTerms(t, t.TempDir(), "SUMMER24")
	writeWorkbook(t, inputDir, "final SUMMER24 EHSS-101.xlsx", []int{14354, 14355, 14356}, []string{"A", "B", "C"})

	runner, err := NewRunner(Options{
		InputDir:  inputDir,
		OutputDir: outputDir,
		TermsFile: termsPath,
		Workers:   1,
	})
	require.NoError(t, err)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Groups, 1)
	assert.Equal(t, "SUMMER24", summary.Groups[0].TermID)
	assert.FileExists(t, filepath.Join(outputDir, "extracted", "grades_extract_SUMMER24_EHSS-101.csv"))
}

func TestRunnerRunFile(t *testing.T) {
	captureLogs(t)

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	runner, err := NewRunner(Options{InputDir: inputDir, OutputDir: outputDir, Workers: 1})
	require.NoError(t, err)

	path := writeWorkbook(t, inputDir, "2023T2E-EHSS-101.xlsx", []int{14354, 14355, 14356}, []string{"A", "B", "C"})
	result, csvPath, err := runner.RunFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeSuccess, result.Outcome)
	assert.Len(t, result.Records, 3)
	assert.Equal(t, filepath.Join(outputDir, "grades_extract.csv"), csvPath)

	lines := readCSVLines(t, csvPath)
	require.Len(t, lines, 4)
	assert.Equal(t, "filename,student_id,grade", lines[0])
	assert.Equal(t, "2023T2E-EHSS-101,14354,A", lines[1])

	t.Run("second file appends", func(t *testing.T) {
		path2 := writeWorkbook(t, inputDir, "another-roster.xlsx", []int{20001, 20002, 20003}, []string{"F", "F", "F"})
		_, _, err := runner.RunFile(context.Background(), path2)
		require.NoError(t, err)

		lines := readCSVLines(t, csvPath)
		require.Len(t, lines, 7)
		assert.Equal(t, "another-roster,20001,F", lines[4])
		assert.Equal(t, 1, strings.Count(strings.Join(lines, "\n"), "filename,student_id,grade"))
	})

	t.Run("no grades writes nothing", func(t *testing.T) {
		empty := writeEmptyWorkbook(t, inputDir, "empty.xlsx")
		result, csvPath, err := runner.RunFile(context.Background(), empty)
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeNoGrades, result.Outcome)
		assert.Empty(t, csvPath)
	})

	t.Run("missing file is a validation error", func(t *testing.T) {
		_, _, err := runner.RunFile(context.Background(), filepath.Join(inputDir, "nope.xlsx"))
		require.Error(t, err)
		assert.Equal(t, ErrorKindValidation, GetErrorKind(err))
	})
}
