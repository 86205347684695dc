package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations in gradex.
type Paths struct {
	ExecutableDir string
	DataDir       string
	InputDir      string
	ExtractedDir  string
	NotFoundDir   string
	LogsDir       string
	TermsFile     string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the
// current working directory, so the tool behaves the same no matter where
// it is invoked from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	// Directory structure:
	// gradex/
	//   ├── terms.csv
	//   ├── data/
	//   │   ├── input/         (grade sheets to process)
	//   │   ├── extracted/     (grouped CSV output)
	//   │   └── not-found/     (files that could not be classified)
	//   └── logs/

	dataDir := filepath.Join(exeDir, "data")

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		InputDir:      filepath.Join(dataDir, "input"),
		ExtractedDir:  filepath.Join(dataDir, ExtractedDirName),
		NotFoundDir:   filepath.Join(dataDir, NotFoundDirName),
		LogsDir:       filepath.Join(exeDir, "logs"),
		TermsFile:     filepath.Join(exeDir, "terms.csv"),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.InputDir,
		p.ExtractedDir,
		p.NotFoundDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRelativePath returns a path relative to the executable directory.
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// GetInputPath returns the path for a grade sheet in the input directory.
func (p *Paths) GetInputPath(filename string) string {
	return filepath.Join(p.InputDir, filename)
}

// GetExtractedPath returns the path for a generated CSV file.
func (p *Paths) GetExtractedPath(filename string) string {
	return filepath.Join(p.ExtractedDir, filename)
}

// GetNotFoundPath returns the destination path for an unclassifiable file.
func (p *Paths) GetNotFoundPath(filename string) string {
	return filepath.Join(p.NotFoundDir, filename)
}

// GetLogPath returns the path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging.
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("input", p.InputDir),
			slog.String("extracted", p.ExtractedDir),
			slog.String("not_found", p.NotFoundDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("reference_files",
			slog.String("terms", p.TermsFile),
			slog.Bool("terms_exists", FileExists(p.TermsFile)),
		))
}
