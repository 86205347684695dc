package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Stem    string
	Size    int64
	ModTime time.Time
}

// Discovery provides workbook discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindWorkbooks finds all xlsx workbooks under dir, recursively. The
// walk is lexical, so the discovery order is deterministic for a given
// tree. Directories listed in skipDirs are not descended into; runs
// pass their own extracted/ and not-found/ areas here so files already
// routed by an earlier run are not picked up again. Hidden files,
// Excel lock files (~$) and __MACOSX debris are ignored.
func (d *Discovery) FindWorkbooks(dir string, skipDirs ...string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	skip := make(map[string]bool, len(skipDirs))
	for _, s := range skipDirs {
		skip[filepath.Clean(s)] = true
	}

	var files []FileInfo
	err := filepath.WalkDir(fullPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if skip[filepath.Clean(path)] || entry.Name() == "__MACOSX" {
				return filepath.SkipDir
			}
			return nil
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
			return nil
		}
		if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:    path,
			Name:    name,
			Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", fullPath, err)
	}

	return files, nil
}

// StatWorkbook returns the FileInfo of a single workbook path, applying
// the same naming rules used during discovery.
func StatWorkbook(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("%s is a directory, not a workbook", path)
	}

	name := filepath.Base(path)
	return FileInfo{
		Path:    path,
		Name:    name,
		Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
