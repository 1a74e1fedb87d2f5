package model

import "time"

// StageInfo describes one stage of a processing run.
type StageInfo struct {
	// Name identifies the stage.
	Name string
	// Columns are the column names the stage operates on.
	Columns []string
	// Skipped marks a stage disabled by the caller's options.
	Skipped bool
}

// StartStage and EndStage bracket every run for observers that track the
// stage chain.
var (
	StartStage = &StageInfo{Name: "start"}
	EndStage   = &StageInfo{Name: "end"}
)

// Observer receives stage lifecycle notifications during a processing run.
type Observer interface {
	// New initialises the observer before the first stage.
	New() error
	// PrepareStage runs before a stage is executed.
	PrepareStage(parent, stage *StageInfo) error
	// OnStageDone runs after a stage finished, with the time it took.
	// Skipped stages report a zero duration.
	OnStageDone(stage *StageInfo, elapsed time.Duration) error
	// Finish runs after the whole run is finished.
	Finish() error
}
