// Package frame provides a small column-oriented container for tabular data.
//
// A Frame is an ordered collection of named Series of equal length. Each cell
// is a Value holding either a number, a string, or nothing (missing). Frames
// are the currency of the preprocess and postprocess packages: every
// transformation consumes a frame and produces a new one, leaving the
// caller's data untouched.
//
// CSV is the only supported interchange format. Reading infers a numeric
// column whenever every non-missing cell parses as a float; empty cells and
// the tokens "NA" and "NaN" are read as missing.
package frame
