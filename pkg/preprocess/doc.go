// Package preprocess prepares tabular data for downstream models.
//
// The entry point is the StandardPreprocessor, a configurable tool which lets
// you pick and choose which operations to apply to your data: imputing,
// scaling, binary label encoding and categorical one-hot encoding, with an
// optional train/test split at the end. Column roles (numeric, binary,
// categoric) are either supplied at construction time or detected with an
// experimental heuristic.
//
// A run never mutates the input frame. The stages execute in a fixed order
// and stop on the first error; observers from the drawer and measure
// subpackages can watch the run to render the stage graph or collect
// timings.
//
//	pre, err := preprocess.New(data,
//		preprocess.WithNumericFeatures("age", "capital-gain"),
//		preprocess.WithBinaryFeatures("sex", "salary"),
//	)
//	if err != nil { ... }
//	res, err := pre.Process(ctx, "salary", preprocess.WithSeed(2020))
package preprocess
