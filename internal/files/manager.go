package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager provides file management operations rooted at a base
// directory. Absolute paths are used as given, relative paths resolve
// against the base.
type Manager struct {
	baseDir string
}

// NewManager creates a new file manager instance
func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.resolvePath(path)
	_, err := os.Stat(fullPath)
	exists := err == nil

	slog.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	fullPath := m.resolvePath(path)

	slog.Debug("Ensuring directory exists",
		slog.String("path", path),
		slog.String("full_path", fullPath))

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return os.MkdirAll(fullPath, 0755)
	}
	return nil
}

// CopyFile copies a file from source to destination
func (m *Manager) CopyFile(src, dst string) error {
	srcPath := m.resolvePath(src)
	dstPath := m.resolvePath(dst)

	slog.Debug("Copying file",
		slog.String("src_path", srcPath),
		slog.String("dst_path", dstPath))

	// Ensure destination directory exists
	dstDir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Open source file
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	// Create destination file
	dstFile, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	// Copy content
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	// Sync to ensure write is complete
	return dstFile.Sync()
}

// MoveFile moves a file from source to destination
func (m *Manager) MoveFile(src, dst string) error {
	srcPath := m.resolvePath(src)
	dstPath := m.resolvePath(dst)

	slog.Debug("Moving file",
		slog.String("src_path", srcPath),
		slog.String("dst_path", dstPath))

	// Ensure destination directory exists
	dstDir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Try rename first (atomic if on same filesystem)
	if err := os.Rename(srcPath, dstPath); err == nil {
		return nil
	}

	// Fall back to copy and delete
	if err := m.CopyFile(src, dst); err != nil {
		return err
	}

	return os.Remove(srcPath)
}

// resolvePath resolves a path against the manager's base directory
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}
