// Package porthodom scores the similarity of two genomic neighborhoods.
//
// A comparison turns the two ordered protein lists into an integer utility
// matrix, solves the maximum-weight assignment on it and normalizes the matched
// utility by the size of the larger neighborhood. Two variants exist:
//
//   - single ("porthodom"): rows and columns are proteins; an entry is
//     round(100*w) for a protein similarity w at or above the protein
//     stringency.
//   - pair ("porthodomO2"): rows and columns are adjacent protein pairs
//     (i, i+1); an entry is round(1e6*w1*w2) where w1 and w2 are the similarities
//     of the aligned first and second members, both at or above the stringency.
//
// This package is domain-only. It never imports pipeline, writers, cli or app.
package porthodom
