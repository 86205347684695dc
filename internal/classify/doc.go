// Package classify recovers the academic term ID and class code embedded
// in grade sheet filenames.
//
// Term IDs appear in several surface forms that grew over the years:
//
//	251216E-T1AE    dated stamp
//	2023T2E         standard year+term
//	2022AT3E        year with section letter
//	2019-2020T3E    year range
//	2022T4ET4E      duplicated term token
//
// All pattern families are evaluated against the upper-cased filename and
// the longest match wins, so a duplicated token is never truncated to its
// standard prefix. When a reference set of known terms is available, a
// known ID found verbatim in the filename takes precedence, and any
// pattern-extracted candidate must be a member of the set.
//
// Class codes (EHSS-101, GESL-205A, ...) are matched case-sensitively and
// independently of term extraction.
package classify
