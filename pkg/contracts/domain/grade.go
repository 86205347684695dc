package domain

// ValidGrades is the set of letter grades recognized during extraction.
// Grade sheets use the standard US letter scale without E.
var ValidGrades = map[string]bool{
	"A": true,
	"B": true,
	"C": true,
	"D": true,
	"F": true,
}

// IsValidGrade reports whether g is a recognized letter grade.
// The value must already be trimmed and upper-cased.
func IsValidGrade(g string) bool {
	return ValidGrades[g]
}

// GradeRecord represents a single extracted (student, grade) pair.
// Records are created during extraction of one source file, grouped by
// (term id, class code), and never mutated afterwards.
type GradeRecord struct {
	SourceFile string `json:"filename" validate:"required"`
	StudentID  string `json:"student_id" validate:"required,len=5,numeric"`
	Grade      string `json:"grade" validate:"required,len=1"`
}
