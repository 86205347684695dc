// Package terms loads the reference table of known academic term IDs.
//
// The reference is a CSV file with a header row containing a "termid"
// column; additional columns are ignored. A missing file is not an error
// (term validation is simply skipped downstream), but a file that cannot
// be parsed, or whose header lacks the termid column, aborts the run.
//
// The loaded Set is immutable and safe to share across concurrent
// classification calls.
package terms
