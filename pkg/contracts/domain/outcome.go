package domain

// Outcome is the terminal classification of one processed source file.
// Every file lands in exactly one bucket; non-success buckets route the
// file to the not-found area.
type Outcome string

const (
	// OutcomeSuccess means records were extracted and the filename yielded
	// both a term id and a class code.
	OutcomeSuccess Outcome = "success"

	// OutcomeNoGrades means no records could be extracted, either because
	// the workbook was unreadable, no qualifying grade and id columns were
	// found, or every row was filtered out. It dominates the other failure
	// buckets: a file without records is never reported as missing a term
	// id or class code.
	OutcomeNoGrades Outcome = "no_grades"

	// OutcomeNoTermID means records were extracted but no term id could be
	// recovered from the filename.
	OutcomeNoTermID Outcome = "no_termid"

	// OutcomeNoClassCode means records were extracted and a term id was
	// recovered, but no class code was found in the filename.
	OutcomeNoClassCode Outcome = "no_classcode"
)

// String returns the outcome token used in logs.
func (o Outcome) String() string {
	return string(o)
}

// Reason returns the operator-facing label used in run summaries.
func (o Outcome) Reason() string {
	switch o {
	case OutcomeSuccess:
		return "Extracted"
	case OutcomeNoGrades:
		return "No grades found"
	case OutcomeNoTermID:
		return "No term ID match"
	case OutcomeNoClassCode:
		return "No class code"
	default:
		return string(o)
	}
}

// FileResult represents the processing result for one source file.
type FileResult struct {
	Name           string         `json:"name"`
	Stem           string         `json:"stem"`
	Classification Classification `json:"classification"`
	Outcome        Outcome        `json:"outcome"`
	Records        []GradeRecord  `json:"records,omitempty"`
}
