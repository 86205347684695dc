// Package config provides centralized configuration management for gradex.
// It handles loading configuration from multiple sources, validation, and
// executable-relative path resolution for every file the tool touches.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (config.yaml or configs/config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern GRADEX_* for namespacing:
//
//	GRADEX_LOGGING_LEVEL=debug
//	GRADEX_LOGGING_OUTPUT=both
//	GRADEX_EXTRACT_WORKERS=4
//	GRADEX_EXTRACT_MOVE_NOT_FOUND=false
//	GRADEX_PATHS_INPUT_DIR=/srv/gradesheets
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which resolves all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	inputPath := paths.GetInputPath("2023T2E_EHSS-101.xlsx")
//	outputPath := paths.GetExtractedPath("grades_extract_2023T2E_EHSS-101.csv")
//
// # Validation
//
// Loaded configuration is validated with struct tags before use, so an
// out-of-range worker count or unknown log level fails at startup rather
// than mid-run.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
