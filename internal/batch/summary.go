package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gradex/pkg/contracts/domain"
)

// movedListLimit caps how many file names are listed per reason in the
// run report before truncating.
const movedListLimit = 5

// renderOrder fixes the reason ordering of the moved-files listing.
var renderOrder = []domain.Outcome{
	domain.OutcomeNoGrades,
	domain.OutcomeNoTermID,
	domain.OutcomeNoClassCode,
}

// RenderSummary writes the operator-facing run report: one line per
// written group CSV, the counter block, and the moved-files listing
// grouped by reason with at most movedListLimit names each.
func RenderSummary(w io.Writer, s *domain.RunSummary) {
	for _, g := range s.Groups {
		fmt.Fprintf(w, "Wrote %d records for %s %s to %s\n",
			g.Records, g.TermID, g.ClassCode, filepath.Base(g.Path))
	}

	divider := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "  Files processed: %d\n", s.FilesProcessed)
	fmt.Fprintf(w, "  Files with grades: %d\n", s.FilesWithGrades)
	fmt.Fprintf(w, "  Files without grades: %d\n", len(s.NoGrades))
	fmt.Fprintf(w, "  Files without term ID: %d\n", len(s.NoTermID))
	fmt.Fprintf(w, "  Files without class code: %d\n", len(s.NoClassCode))
	fmt.Fprintf(w, "  Files moved to not-found/: %d\n", len(s.Moved))
	fmt.Fprintf(w, "  Total grade records: %d\n", s.TotalRecords)
	fmt.Fprintf(w, "  CSV files written: %d\n", len(s.Groups))
	fmt.Fprintf(w, "  Output directory: %s\n", s.ExtractedDir)
	fmt.Fprintf(w, "  Not-found directory: %s\n", s.NotFoundDir)

	if len(s.Moved) == 0 {
		return
	}

	fmt.Fprintf(w, "\nMoved to not-found/ directory:\n")
	grouped := s.MovedByOutcome()
	for _, outcome := range renderOrder {
		names := grouped[outcome]
		if len(names) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n  %s (%d files):\n", outcome.Reason(), len(names))
		shown := names
		if len(shown) > movedListLimit {
			shown = shown[:movedListLimit]
		}
		for _, name := range shown {
			fmt.Fprintf(w, "    - %s\n", name)
		}
		if extra := len(names) - movedListLimit; extra > 0 {
			fmt.Fprintf(w, "    ... and %d more\n", extra)
		}
	}
}
