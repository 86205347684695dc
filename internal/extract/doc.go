// Package extract implements the core of gradex: reading grade sheets of
// unknown layout and recovering (student id, letter grade) pairs from them.
//
// # Cell Model
//
// Spreadsheet cells arrive as a tagged union (empty, text, or number) and
// are normalized to a uniform trimmed string form before any rule runs,
// so the inference rules never care how a producer typed a cell. A numeric
// cell renders with minimal digits: an id stored as the float 14354.0
// normalizes to "14354", while the literal text "14354.0" keeps its
// characters and is rejected by id validation.
//
// # Column Role Inference
//
// Given the full row-by-column grid of a sheet, each column is profiled
// independently: how many of its non-empty values look like letter grades,
// how many look like 4-5 digit student ids. A column qualifies for a role
// when it has at least MinRoleMatches matching values and the matching
// fraction exceeds MinRoleDensity. Across qualifying columns the highest
// density wins, ties going to the leftmost column. A sheet contributes
// records only when both a grade column and an id column are found.
//
// # Extraction
//
// One record is emitted per row where both cells are present and valid;
// sparse or malformed rows are skipped silently. Workbooks are processed
// first-sheet-with-records wins, since grade workbooks carry a single
// grades sheet and later sheets hold summaries or duplicates.
//
// All inference and extraction functions are pure: same grid in, same
// roles and records out.
package extract
