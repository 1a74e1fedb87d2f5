// Package estimator provides fit/transform estimators for tabular columns.
//
// Every estimator learns its parameters from the data it is fitted on, keyed
// by column name, and refuses to transform before fitting. Scalers also
// expose the inverse transform so processed output can be mapped back to the
// original domain by the postprocess package.
package estimator
