// Package config loads YAML run configurations and turns them into the
// preprocessor and process options they describe.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/bowline-go/bowline/pkg/estimator"
	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/preprocess"
)

// ErrNoTarget is returned when a configuration names no target column.
var ErrNoTarget = errors.New("target must be set")

// Features lists the data columns by role.
type Features struct {
	Numeric   []string `yaml:"numeric"`
	Categoric []string `yaml:"categoric"`
	Binary    []string `yaml:"binary"`
}

func (f Features) empty() bool {
	return len(f.Numeric) == 0 && len(f.Categoric) == 0 && len(f.Binary) == 0
}

// Skip switches individual stages off.
type Skip struct {
	Imputer      bool `yaml:"imputer"`
	Scaler       bool `yaml:"scaler"`
	LabelEncoder bool `yaml:"label_encoder"`
	OneHot       bool `yaml:"one_hot"`
	Split        bool `yaml:"split"`
}

// Process holds the per-run settings.
type Process struct {
	TestSize      float64              `yaml:"test_size"`
	Seed          int64                `yaml:"seed"`
	RemoveMissing bool                 `yaml:"remove_missing"`
	ScaleTarget   bool                 `yaml:"scale_target"`
	Concurrency   int                  `yaml:"concurrency"`
	Skip          Skip                 `yaml:"skip"`
	Imputer       estimator.Strategy   `yaml:"imputer"`
	ConstantFill  float64              `yaml:"constant_fill"`
	Scaler        estimator.ScalerKind `yaml:"scaler"`
}

// Config is a full run configuration.
type Config struct {
	Input      string   `yaml:"input"`
	Target     string   `yaml:"target"`
	AutoDetect bool     `yaml:"auto_detect"`
	Features   Features `yaml:"features"`
	Process    Process  `yaml:"process"`
}

// Default returns a configuration with every setting at its default.
func Default() *Config {
	return &Config{
		Process: Process{
			TestSize:    0.25,
			ScaleTarget: true,
			Concurrency: 1,
			Imputer:     estimator.Mean,
			Scaler:      estimator.StandardScaling,
		},
	}
}

// LoadFromYAML parses a configuration document. Absent keys keep their
// defaults.
func LoadFromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg, err := LoadFromYAML(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return cfg, nil
}

// Validate checks the configuration for contradictions before any data is
// touched.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}
	if c.AutoDetect && !c.Features.empty() {
		return preprocess.ErrAutoDetectConflict
	}
	if !c.AutoDetect && c.Features.empty() {
		return preprocess.ErrNoFeatures
	}
	if !c.Process.Skip.Split && (c.Process.TestSize <= 0 || c.Process.TestSize >= 1) {
		return errors.Wrapf(preprocess.ErrTestSize, "%v", c.Process.TestSize)
	}
	if !c.Process.Skip.Imputer && !estimator.KnownStrategy(c.Process.Imputer) {
		return errors.Errorf("unknown imputer strategy %q", c.Process.Imputer)
	}
	if !c.Process.Skip.Scaler {
		if _, err := estimator.NewScaler(c.Process.Scaler); err != nil {
			return err
		}
	}

	return nil
}

// Preprocessor builds the configured preprocessor around the data.
func (c *Config) Preprocessor(data *frame.Frame) (*preprocess.StandardPreprocessor, error) {
	var opts []preprocess.Option
	if c.AutoDetect {
		opts = append(opts, preprocess.WithAutoDetect())
	}
	if len(c.Features.Numeric) > 0 {
		opts = append(opts, preprocess.WithNumericFeatures(c.Features.Numeric...))
	}
	if len(c.Features.Categoric) > 0 {
		opts = append(opts, preprocess.WithCategoricFeatures(c.Features.Categoric...))
	}
	if len(c.Features.Binary) > 0 {
		opts = append(opts, preprocess.WithBinaryFeatures(c.Features.Binary...))
	}

	return preprocess.New(data, opts...)
}

// ProcessOptions translates the run settings into process options.
func (c *Config) ProcessOptions() ([]preprocess.ProcessOption, error) {
	p := c.Process

	opts := []preprocess.ProcessOption{
		preprocess.WithTestSize(p.TestSize),
		preprocess.WithSeed(p.Seed),
		preprocess.WithConcurrency(p.Concurrency),
	}

	switch {
	case p.Skip.Imputer:
		opts = append(opts, preprocess.WithoutImputer())
	case p.Imputer == estimator.Constant:
		im := estimator.NewSimpleImputer(estimator.Constant).
			WithConstant(frame.Number(p.ConstantFill))
		opts = append(opts, preprocess.WithImputer(im))
	default:
		opts = append(opts, preprocess.WithImputer(estimator.NewSimpleImputer(p.Imputer)))
	}

	if p.Skip.Scaler {
		opts = append(opts, preprocess.WithoutScaler())
	} else {
		sc, err := estimator.NewScaler(p.Scaler)
		if err != nil {
			return nil, err
		}
		opts = append(opts, preprocess.WithScaler(sc))
	}

	if p.Skip.LabelEncoder {
		opts = append(opts, preprocess.WithoutLabelEncoder())
	}
	if p.Skip.OneHot {
		opts = append(opts, preprocess.WithoutOneHotEncoder())
	}
	if p.Skip.Split {
		opts = append(opts, preprocess.WithoutSplit())
	}
	if p.RemoveMissing {
		opts = append(opts, preprocess.WithRemoveMissing())
	}
	if !p.ScaleTarget {
		opts = append(opts, preprocess.WithoutTargetScaling())
	}

	return opts, nil
}
