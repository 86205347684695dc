package domain

// Classification represents the term id and class code recovered from a
// source filename. Either field may be empty when the corresponding token
// could not be extracted; absence is a normal state, not an error.
type Classification struct {
	TermID    string `json:"term_id,omitempty"`
	ClassCode string `json:"class_code,omitempty"`
}

// HasTermID reports whether a term id was extracted.
func (c Classification) HasTermID() bool {
	return c.TermID != ""
}

// HasClassCode reports whether a class code was extracted.
func (c Classification) HasClassCode() bool {
	return c.ClassCode != ""
}

// Complete reports whether both tokens were extracted. Only complete
// classifications contribute records to grouped output.
func (c Classification) Complete() bool {
	return c.HasTermID() && c.HasClassCode()
}

// GroupKey returns the output grouping key "{termid}_{classcode}" used to
// name one output table per distinct (term, class) pair.
func (c Classification) GroupKey() string {
	return c.TermID + "_" + c.ClassCode
}
