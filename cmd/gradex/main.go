// Command gradex extracts student grade records from xlsx workbooks.
// Pointed at a directory it classifies every workbook by term and class
// from the filename, writes one CSV per group and routes unclassifiable
// files aside; pointed at a single file it appends the records to a
// shared grades_extract.csv.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"gradex/internal/batch"
	"gradex/internal/config"
	"gradex/internal/infrastructure"
	"gradex/pkg/contracts"
	"gradex/pkg/contracts/domain"
)

func main() {
	output := flag.String("o", "", "output directory for the extracted/ and not-found/ areas (defaults to the data directory)")
	termsFlag := flag.String("t", "", "terms reference csv (defaults to terms.csv next to the executable)")
	workersFlag := flag.Int("workers", 0, "concurrent workbook readers (defaults from config)")
	noMove := flag.Bool("no-move", false, "leave unclassifiable files where they are")
	verbose := flag.Bool("v", false, "verbose output (debug logging)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	// Optional .env carries GRADEX_* overrides picked up by envconfig.
	_ = godotenv.Load()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("gradex.log")
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	// Flags win over config; config wins over executable-relative defaults.
	input := flag.Arg(0)
	if input == "" {
		input = cfg.ResolveInputDir(paths)
	}
	outputDir := *output
	if outputDir == "" {
		outputDir = cfg.ResolveOutputDir(paths)
	}
	termsPath := *termsFlag
	if termsPath == "" {
		termsPath = cfg.ResolveTermsFile(paths)
	}
	workers := *workersFlag
	if workers <= 0 {
		workers = cfg.Extract.Workers
	}
	moveNotFound := cfg.Extract.MoveNotFound && !*noMove

	info, err := os.Stat(input)
	if err != nil {
		fmt.Printf("Error: %s does not exist\n", input)
		logger.Error("Input path does not exist", slog.String("input", input))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureRunID(ctx)

	inputDir := input
	if !info.IsDir() {
		inputDir = filepath.Dir(input)
	}

	runner, err := batch.NewRunner(batch.Options{
		InputDir:     inputDir,
		OutputDir:    outputDir,
		TermsFile:    termsPath,
		Workers:      workers,
		MoveNotFound: moveNotFound,
	})
	if err != nil {
		logger.Error("Failed to set up run",
			slog.String("kind", string(batch.GetErrorKind(err))),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Starting grade extraction",
		slog.String("input", input),
		slog.String("output_dir", outputDir),
		slog.String("terms_file", termsPath),
		slog.Int("workers", workers),
		slog.Bool("move_not_found", moveNotFound))

	if info.IsDir() {
		fmt.Printf("Directory mode - processing all xlsx files in %s\n", input)
		summary, err := runner.Run(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Grade extraction failed",
				slog.String("kind", string(batch.GetErrorKind(err))),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		batch.RenderSummary(os.Stdout, summary)
		logger.InfoContext(ctx, "Grade extraction completed",
			slog.Int("files_processed", summary.FilesProcessed),
			slog.Int("total_records", summary.TotalRecords))
		return
	}

	fmt.Println("Single file mode - processing one xlsx file")
	result, csvPath, err := runner.RunFile(ctx, input)
	if err != nil {
		logger.ErrorContext(ctx, "Grade extraction failed",
			slog.String("kind", string(batch.GetErrorKind(err))),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	reportFile(os.Stdout, input, result, csvPath)
}

// reportFile prints the single-file outcome. The no-grades line carries
// the path as given on the command line, the success lines the bare
// filename and the CSV destination.
func reportFile(w io.Writer, path string, result domain.FileResult, csvPath string) {
	if result.Outcome != domain.OutcomeSuccess {
		fmt.Fprintf(w, "No grades found in %s\n", path)
		return
	}
	fmt.Fprintf(w, "Extracted %d grades from %s\n", len(result.Records), result.Name)
	fmt.Fprintf(w, "Output: %s\n", csvPath)
}
