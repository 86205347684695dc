// Package shared holds cross-cutting helpers that belong to no single
// domain package.
//
// The testutil subpackage provides a buffered slog handler so tests can
// assert on log output without touching stderr. Nothing here carries
// business logic; packages under internal/ may depend on shared, never
// the other way around.
package shared
