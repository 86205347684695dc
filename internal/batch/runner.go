package batch

import (
	"context"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"gradex/internal/classify"
	"gradex/internal/config"
	"gradex/internal/exporter"
	"gradex/internal/extract"
	"gradex/internal/files"
	"gradex/internal/terms"
	"gradex/pkg/contracts/domain"
)

// Options configures a batch run.
type Options struct {
	// InputDir is the directory scanned for xlsx workbooks.
	InputDir string

	// OutputDir is the root that receives the extracted/ and not-found/
	// areas. Defaults to InputDir when empty.
	OutputDir string

	// TermsFile points at the term reference CSV. A missing file is not
	// an error; classification then accepts any pattern-shaped term id.
	TermsFile string

	// Workers bounds concurrent workbook processing. Values outside
	// [1, config.MaxWorkers] are clamped.
	Workers int

	// MoveNotFound controls whether files without usable data or
	// classification are relocated into the not-found area.
	MoveNotFound bool
}

// Runner executes grade extraction over a directory of workbooks.
type Runner struct {
	opts      Options
	terms     *terms.Set
	discovery *files.Discovery
	manager   *files.Manager
}

// NewRunner validates the options, loads the term reference set and
// returns a ready runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.InputDir == "" {
		return nil, NewValidationError("setup", "input directory is required")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = opts.InputDir
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Workers > config.MaxWorkers {
		opts.Workers = config.MaxWorkers
	}

	set, err := terms.Load(opts.TermsFile)
	if err != nil {
		return nil, WrapError(err, "terms", "failed to load term reference")
	}

	return &Runner{
		opts:      opts,
		terms:     set,
		discovery: files.NewDiscovery(opts.InputDir),
		manager:   files.NewManager(opts.OutputDir),
	}, nil
}

// Run processes every workbook under the input directory: extraction and
// classification fan out across the configured workers, results are
// folded into the summary in discovery order, unclassifiable files are
// routed to the not-found area, and one CSV per (term, class) group is
// written into the extracted area.
func (r *Runner) Run(ctx context.Context) (*domain.RunSummary, error) {
	extractedDir := filepath.Join(r.opts.OutputDir, config.ExtractedDirName)
	notFoundDir := filepath.Join(r.opts.OutputDir, config.NotFoundDirName)

	if err := r.manager.EnsureDirectory(extractedDir); err != nil {
		return nil, WrapError(err, "setup", "failed to create extracted directory")
	}
	if err := r.manager.EnsureDirectory(notFoundDir); err != nil {
		return nil, WrapError(err, "setup", "failed to create not-found directory")
	}

	workbooks, err := r.discovery.FindWorkbooks(r.opts.InputDir, extractedDir, notFoundDir)
	if err != nil {
		return nil, NewDiscoveryError(r.opts.InputDir, err)
	}

	slog.InfoContext(ctx, "Found xlsx files to process",
		slog.Int("count", len(workbooks)),
		slog.String("input_dir", r.opts.InputDir),
		slog.Int("workers", r.opts.Workers))

	summary := &domain.RunSummary{
		ExtractedDir: extractedDir,
		NotFoundDir:  notFoundDir,
	}

	// Extraction fans out; each slot is owned by exactly one worker so
	// the results slice needs no locking.
	results := make([]domain.FileResult, len(workbooks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, wb := range workbooks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.processWorkbook(gctx, wb)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, NewCancellationError("extract", err)
	}

	// Fold results serially, in discovery order.
	for _, result := range results {
		summary.Record(result)
	}

	if r.opts.MoveNotFound {
		r.moveUnclassified(ctx, workbooks, results, notFoundDir, summary)
	}

	groups, err := exporter.NewGroupExporter(extractedDir).ExportGrouped(results)
	if err != nil {
		return summary, NewExportError(err)
	}
	summary.Groups = groups

	return summary, nil
}

// processWorkbook extracts and classifies a single workbook. Extraction
// problems degrade to the no-grades outcome rather than failing the
// run; a batch over hundreds of files must survive individual bad ones.
func (r *Runner) processWorkbook(ctx context.Context, wb files.FileInfo) domain.FileResult {
	result := domain.FileResult{Name: wb.Name, Stem: wb.Stem}

	slog.DebugContext(ctx, "Processing workbook",
		slog.String("file", wb.Name),
		slog.Int64("size_bytes", wb.Size))

	records, err := extract.FromWorkbook(wb.Path, wb.Stem)
	if err != nil {
		slog.WarnContext(ctx, "Could not read workbook",
			slog.String("file", wb.Name),
			slog.String("error", err.Error()))
	}
	if len(records) == 0 {
		result.Outcome = domain.OutcomeNoGrades
		slog.InfoContext(ctx, "No grades found", slog.String("file", wb.Name))
		return result
	}
	result.Records = records

	result.Classification = classify.Filename(wb.Name, r.terms)
	switch {
	case !result.Classification.HasTermID():
		result.Outcome = domain.OutcomeNoTermID
		slog.InfoContext(ctx, "Grades found but no term ID match",
			slog.String("file", wb.Name),
			slog.Int("records", len(records)))
	case !result.Classification.HasClassCode():
		result.Outcome = domain.OutcomeNoClassCode
		slog.InfoContext(ctx, "Grades found but no class code",
			slog.String("file", wb.Name),
			slog.Int("records", len(records)))
	default:
		result.Outcome = domain.OutcomeSuccess
		slog.InfoContext(ctx, "Extracted grades",
			slog.String("file", wb.Name),
			slog.String("term_id", result.Classification.TermID),
			slog.String("class_code", result.Classification.ClassCode),
			slog.Int("records", len(records)))
	}
	return result
}

// moveUnclassified routes every non-success file into the not-found
// area. A failed move is logged and skipped; the file keeps its outcome
// in the summary but is not counted as moved.
func (r *Runner) moveUnclassified(ctx context.Context, workbooks []files.FileInfo, results []domain.FileResult, notFoundDir string, summary *domain.RunSummary) {
	for i, result := range results {
		if result.Outcome == domain.OutcomeSuccess {
			continue
		}

		dest := filepath.Join(notFoundDir, result.Name)
		if err := r.manager.MoveFile(workbooks[i].Path, dest); err != nil {
			slog.WarnContext(ctx, "Failed to move file to not-found",
				slog.String("file", result.Name),
				slog.String("error", err.Error()))
			continue
		}

		summary.RecordMove(result.Name, result.Outcome)
		slog.DebugContext(ctx, "Moved to not-found",
			slog.String("file", result.Name),
			slog.String("reason", result.Outcome.String()))
	}
}

// RunFile processes one workbook and appends its records to the shared
// grades_extract.csv in the output directory. Single-file runs neither
// classify the filename nor move anything; the CSV carries the file
// stem in its filename column. Returns the result, the CSV path when
// records were written, and any fatal error.
func (r *Runner) RunFile(ctx context.Context, path string) (domain.FileResult, string, error) {
	wb, err := files.StatWorkbook(path)
	if err != nil {
		return domain.FileResult{}, "", NewValidationError("input", err.Error())
	}

	result := domain.FileResult{Name: wb.Name, Stem: wb.Stem}

	records, err := extract.FromWorkbook(wb.Path, wb.Stem)
	if err != nil {
		slog.WarnContext(ctx, "Could not read workbook",
			slog.String("file", wb.Name),
			slog.String("error", err.Error()))
	}
	if len(records) == 0 {
		result.Outcome = domain.OutcomeNoGrades
		return result, "", nil
	}
	result.Records = records
	result.Outcome = domain.OutcomeSuccess

	csvPath, err := exporter.NewGroupExporter(r.opts.OutputDir).AppendRecords(records)
	if err != nil {
		return result, csvPath, NewExportError(err)
	}

	slog.InfoContext(ctx, "Extracted grades",
		slog.String("file", wb.Name),
		slog.Int("records", len(records)),
		slog.String("output", csvPath))
	return result, csvPath, nil
}
