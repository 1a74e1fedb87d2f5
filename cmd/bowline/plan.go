package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bowline-go/bowline/pkg/config"
	"github.com/bowline-go/bowline/pkg/preprocess/drawer"
	"github.com/bowline-go/bowline/pkg/preprocess/model"
)

func newPlanCommand(fsys afero.Fs) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Render the configured stage graph as GraphViz DOT without touching data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(fsys, cmd)
			if err != nil {
				return err
			}

			return renderPlan(fsys, out, cfg)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "plan.dot", "DOT file to write")

	return cmd
}

// renderPlan walks the stage chain a run would execute through a drawing
// observer, marking the stages the configuration switches off as skipped.
func renderPlan(fsys afero.Fs, path string, cfg *config.Config) error {
	skip := cfg.Process.Skip
	stages := []*model.StageInfo{
		{Name: "impute", Skipped: skip.Imputer},
		{Name: "check-missing"},
		{Name: "label-encode", Skipped: skip.LabelEncoder},
		{Name: "one-hot", Skipped: skip.OneHot},
		{Name: "scale", Skipped: skip.Scaler},
		{Name: "split", Skipped: skip.Split},
	}

	d := drawer.New(fsys, path)
	if err := d.New(); err != nil {
		return err
	}

	parent := model.StartStage
	for _, st := range stages {
		if err := d.PrepareStage(parent, st); err != nil {
			return err
		}
		parent = st
	}

	return d.Finish()
}
