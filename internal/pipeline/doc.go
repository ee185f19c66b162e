// Package pipeline runs all unordered neighborhood comparisons through a
// Comparer, drops pairs below the neighborhood stringency and calls a visit
// callback in (m, n) order.
//
// The only contract to implement is Comparer (Compare).
// This keeps the pipeline swappable and testable.
package pipeline
