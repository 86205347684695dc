// Package files provides file system operations and discovery utilities
// for the gradex extraction tool.
//
// This package contains two main components:
//
// Discovery: Finds xlsx workbooks under an input directory. The walk is
// recursive and lexical, skips a run's own output areas so re-runs do
// not reprocess routed files, and ignores Excel lock files and other
// non-workbook debris.
//
// Manager: Provides basic file management operations such as copying
// and moving files and ensuring directories exist. Moves are used to
// route workbooks that yielded no usable data into the not-found area.
//
// Example usage:
//
//	// Find the workbooks of a run
//	discovery := files.NewDiscovery("/path/to/base")
//	workbooks, err := discovery.FindWorkbooks("data/input", extractedDir, notFoundDir)
//
//	// Route a workbook to the not-found area
//	manager := files.NewManager("/path/to/base")
//	err = manager.MoveFile(workbooks[0].Path, filepath.Join(notFoundDir, workbooks[0].Name))
package files
