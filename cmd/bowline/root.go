package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bowline-go/bowline/pkg/config"
)

// newRootCommand builds the command tree. The filesystem is injected so
// tests can run against an in-memory one.
func newRootCommand(fsys afero.Fs) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bowline",
		Short:         "Pre- and post-processing for tabular machine learning data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "bowline.yaml", "path to the run configuration")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log per-stage details")

	rootCmd.AddCommand(
		newProcessCommand(fsys),
		newDetectCommand(fsys),
		newPlanCommand(fsys),
	)

	return rootCmd
}

func loadConfig(fsys afero.Fs, cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, errors.Wrap(err, "config flag")
	}

	return config.Load(fsys, path)
}
