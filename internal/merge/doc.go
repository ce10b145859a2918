// Package merge deduplicates and unions line-oriented tool outputs.
//
// The pipeline uses it to combine the two subdomain enumerator outputs
// into a single list: lines are compared by exact text equality, the
// first occurrence wins, and relative order within each input is
// preserved. Inputs that do not exist contribute nothing; the output
// file is always created, even when empty.
package merge
