package domain

// MovedFile records one file routed to the not-found area and why.
type MovedFile struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
}

// GroupReport represents one written output table for a (term, class) group.
type GroupReport struct {
	TermID    string `json:"term_id"`
	ClassCode string `json:"class_code"`
	Records   int    `json:"records"`
	Path      string `json:"path"`
}

// RunSummary aggregates the results of one batch run for operator reporting.
type RunSummary struct {
	FilesProcessed  int           `json:"files_processed"`
	FilesWithGrades int           `json:"files_with_grades"`
	NoGrades        []string      `json:"no_grades,omitempty"`
	NoTermID        []string      `json:"no_termid,omitempty"`
	NoClassCode     []string      `json:"no_classcode,omitempty"`
	Moved           []MovedFile   `json:"moved,omitempty"`
	TotalRecords    int           `json:"total_records"`
	Groups          []GroupReport `json:"groups,omitempty"`
	ExtractedDir    string        `json:"extracted_dir"`
	NotFoundDir     string        `json:"not_found_dir"`
}

// Record folds one file result into the summary counters. Moves are
// tracked separately via RecordMove because a move can fail independently
// of the outcome classification.
func (s *RunSummary) Record(r FileResult) {
	s.FilesProcessed++
	switch r.Outcome {
	case OutcomeSuccess:
		s.FilesWithGrades++
		s.TotalRecords += len(r.Records)
	case OutcomeNoGrades:
		s.NoGrades = append(s.NoGrades, r.Name)
	case OutcomeNoTermID:
		s.FilesWithGrades++
		s.TotalRecords += len(r.Records)
		s.NoTermID = append(s.NoTermID, r.Name)
	case OutcomeNoClassCode:
		s.FilesWithGrades++
		s.TotalRecords += len(r.Records)
		s.NoClassCode = append(s.NoClassCode, r.Name)
	}
}

// RecordMove notes that a file was relocated to the not-found area.
func (s *RunSummary) RecordMove(name string, outcome Outcome) {
	s.Moved = append(s.Moved, MovedFile{Name: name, Outcome: outcome})
}

// MovedByOutcome groups the moved files by outcome, preserving the order
// in which they were recorded.
func (s *RunSummary) MovedByOutcome() map[Outcome][]string {
	grouped := make(map[Outcome][]string)
	for _, m := range s.Moved {
		grouped[m.Outcome] = append(grouped[m.Outcome], m.Name)
	}
	return grouped
}
