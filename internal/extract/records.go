package extract

import (
	"strings"
	"unicode"

	"gradex/pkg/contracts/domain"
)

// NormalizeGrade returns the canonical uppercase form of a letter grade
// cell value, or ok=false when the value is not a recognized grade.
// Matching is case-insensitive; surrounding whitespace must already be
// trimmed by the cell layer.
func NormalizeGrade(value string) (string, bool) {
	grade := strings.ToUpper(value)
	if !domain.IsValidGrade(grade) {
		return "", false
	}
	return grade, true
}

// NormalizeStudentID strips every non-digit character from the value and
// zero-pads the remaining digits to five places. Values with fewer than
// four or more than five digits are rejected rather than padded or
// truncated, so "123" and "123456" both fail while "1234" becomes
// "01234". Separators such as "14-354" collapse to their digits.
func NormalizeStudentID(value string) (string, bool) {
	digits := digitsOf(value)
	if len(digits) < 4 || len(digits) > 5 {
		return "", false
	}
	for len(digits) < 5 {
		digits = "0" + digits
	}
	return digits, true
}

func digitsOf(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Records walks every row of the grid and emits one grade record per row
// whose grade and id cells are both present and valid. Rows failing
// either side are skipped without affecting their neighbours; sparse
// sheets are normal input, not an error. Returns nil when the role
// assignment is incomplete.
func Records(grid Grid, roles ColumnRoles, sourceName string) []domain.GradeRecord {
	if !roles.Complete() {
		return nil
	}

	var records []domain.GradeRecord
	for row := range grid {
		gradeCell := grid.At(row, roles.GradeCol)
		idCell := grid.At(row, roles.IDCol)
		if gradeCell.IsEmpty() || idCell.IsEmpty() {
			continue
		}

		grade, ok := NormalizeGrade(gradeCell.Norm())
		if !ok {
			continue
		}
		id, ok := NormalizeStudentID(idCell.Norm())
		if !ok {
			continue
		}

		records = append(records, domain.GradeRecord{
			SourceFile: sourceName,
			StudentID:  id,
			Grade:      grade,
		})
	}
	return records
}

// FromGrid infers column roles for the grid and extracts its records in
// one step.
func FromGrid(grid Grid, sourceName string) []domain.GradeRecord {
	return Records(grid, InferColumnRoles(grid), sourceName)
}
