package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bowline-go/bowline/internal/logging"
	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/preprocess"
	"github.com/bowline-go/bowline/pkg/preprocess/drawer"
	"github.com/bowline-go/bowline/pkg/preprocess/measure"
	"github.com/bowline-go/bowline/pkg/preprocess/model"
)

func newProcessCommand(fsys afero.Fs) *cobra.Command {
	var (
		input    string
		outDir   string
		planPath string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run the configured processing stages over a CSV file",
		Long: "Run the configured processing stages over a CSV file and write " +
			"the processed partitions next to each other in the output directory.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(fsys, cmd)
			if err != nil {
				return err
			}
			if input == "" {
				input = cfg.Input
			}
			if input == "" {
				return errors.New("no input file: set --input or the config input key")
			}

			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return errors.Wrap(err, "verbose flag")
			}
			logger := logging.New(cmd.ErrOrStderr(), verbose)

			data, err := frame.ReadCSVFile(fsys, input)
			if err != nil {
				return err
			}
			logger.Info().
				Str("input", input).
				Int("rows", data.NumRows()).
				Int("columns", data.NumCols()).
				Msg("data loaded")

			pre, err := cfg.Preprocessor(data)
			if err != nil {
				return err
			}
			opts, err := cfg.ProcessOptions()
			if err != nil {
				return err
			}

			timings := measure.New()
			observers := []model.Observer{timings}
			if planPath != "" {
				observers = append(observers, drawer.New(fsys, planPath))
			}
			opts = append(opts,
				preprocess.WithLogger(logger),
				preprocess.WithObservers(observers...),
			)

			res, err := pre.Process(cmd.Context(), cfg.Target, opts...)
			if err != nil {
				return err
			}

			metrics := timings.Metrics()
			for _, name := range timings.StageNames() {
				logger.Debug().
					Str("stage", name).
					Dur("total", metrics[name].Total).
					Msg("stage timing")
			}

			if err := writeResult(fsys, outDir, res); err != nil {
				return err
			}
			logger.Info().Str("out_dir", outDir).Msg("processing finished")

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to process (overrides the config input key)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory the processed CSV files are written to")
	cmd.Flags().StringVar(&planPath, "plan", "", "also render the executed stage graph as DOT to this path")

	return cmd
}

// writeResult writes the processed partitions as CSV files. A split run
// produces x_train/x_test/y_train/y_test, an unsplit one x and y.
func writeResult(fsys afero.Fs, dir string, res *preprocess.Result) error {
	writeFrame := func(name string, f *frame.Frame) error {
		return f.WriteCSVFile(fsys, filepath.Join(dir, name))
	}
	writeSeries := func(name string, s *frame.Series) error {
		f, err := frame.New(s)
		if err != nil {
			return err
		}

		return writeFrame(name, f)
	}

	if !res.Split() {
		if err := writeFrame("x.csv", res.X); err != nil {
			return err
		}

		return writeSeries("y.csv", res.Y)
	}

	if err := writeFrame("x_train.csv", res.XTrain); err != nil {
		return err
	}
	if err := writeFrame("x_test.csv", res.XTest); err != nil {
		return err
	}
	if err := writeSeries("y_train.csv", res.YTrain); err != nil {
		return err
	}

	return writeSeries("y_test.csv", res.YTest)
}
