package classify

import (
	"regexp"
	"strings"

	"gradex/internal/terms"
	"gradex/pkg/contracts/domain"
)

// family is one term-id pattern family. Families are declared most
// specific first; selection takes the longest match across families,
// ties resolved by declaration order.
type family struct {
	name string
	re   *regexp.Regexp
}

var termFamilies = []family{
	// 251216E-T1AE
	{"dated", regexp.MustCompile(`\d{6}E-T\d[A-Z]{1,2}E`)},
	// 2023T2E
	{"standard", regexp.MustCompile(`\d{4}T\dE`)},
	// 2022AT3E, 2019-2020T3E
	{"year_range", regexp.MustCompile(`\d{4}(?:-\d{4})?[A-Z]?T\dE`)},
	// 2022T4ET4E, 2023T2BT2E, 2022T4T4E
	{"repeated", regexp.MustCompile(`\d{4}(?:T\d[A-Z]?E?)+T\d[A-Z]?E`)},
}

// regex for class codes like "EHSS-101" or "GESL-205A"
var classCodeRe = regexp.MustCompile(`[A-Z]{4}-[A-Z0-9]+`)

// Filename classifies a bare filename, returning the recovered term id
// and class code. Either or both may be absent; absence is a normal
// result, never an error.
func Filename(name string, known *terms.Set) domain.Classification {
	termID, _ := TermID(name, known)
	classCode, _ := ClassCode(name)
	return domain.Classification{TermID: termID, ClassCode: classCode}
}

// TermID extracts the academic term id from a filename. The token may
// appear anywhere in the name and is matched without regard to case.
//
// When the known set is non-empty, two rules apply: a known ID found
// verbatim in the filename wins outright, and a pattern-extracted
// candidate is only accepted if it is a member of the set. The returned
// id always uses the reference spelling in that case.
func TermID(name string, known *terms.Set) (string, bool) {
	upper := strings.ToUpper(name)

	// Known IDs are scanned longest first so an ID that contains another
	// as a substring is found before its shorter sibling.
	for _, term := range known.All() {
		if strings.Contains(upper, strings.ToUpper(term)) {
			return term, true
		}
	}

	candidate := matchTermPattern(upper)
	if candidate == "" {
		return "", false
	}

	if !known.IsEmpty() {
		// Only trust patterns independently confirmed by the reference.
		return known.Canonical(candidate)
	}

	return candidate, true
}

// matchTermPattern returns the best pattern-family match in upper, or ""
// when no family matches. Each family contributes its leftmost match;
// the longest across families wins, earlier families win ties.
func matchTermPattern(upper string) string {
	best := ""
	for _, f := range termFamilies {
		if m := f.re.FindString(upper); len(m) > len(best) {
			best = m
		}
	}
	return best
}

// ClassCode extracts the course code from a filename. Matching is
// case-sensitive on the raw name and the first match wins. Class codes
// are never validated against a reference.
func ClassCode(name string) (string, bool) {
	m := classCodeRe.FindString(name)
	return m, m != ""
}
