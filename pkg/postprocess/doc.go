// Package postprocess maps model output back to the original data domain.
//
// The StandardPostprocessor is the mirror image of the preprocess package: it
// is built from the artifacts a process run fitted, and undoes the target
// encoding and the numeric scaling so predictions read like the raw data
// again.
package postprocess
