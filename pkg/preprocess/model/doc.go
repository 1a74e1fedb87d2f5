// Package model provides the shared data structures of the preprocess
// package: the description of a processing stage and the observer contract
// notified while a run progresses.
package model
