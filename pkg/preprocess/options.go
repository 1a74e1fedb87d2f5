package preprocess

import (
	"github.com/rs/zerolog"

	"github.com/bowline-go/bowline/pkg/estimator"
	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/preprocess/model"
)

// Option configures a StandardPreprocessor at construction time.
type Option func(p *StandardPreprocessor)

// WithNumericFeatures names the continuous numeric columns of the data.
func WithNumericFeatures(names ...string) Option {
	return func(p *StandardPreprocessor) {
		p.numeric = append(p.numeric, names...)
	}
}

// WithCategoricFeatures names the categoric columns of the data. These are
// columns with more than two options.
func WithCategoricFeatures(names ...string) Option {
	return func(p *StandardPreprocessor) {
		p.categoric = append(p.categoric, names...)
	}
}

// WithBinaryFeatures names the binary columns of the data. These are columns
// with exactly two options.
func WithBinaryFeatures(names ...string) Option {
	return func(p *StandardPreprocessor) {
		p.binary = append(p.binary, names...)
	}
}

// WithAutoDetect enables the experimental column role detection. It cannot be
// combined with explicit feature lists.
func WithAutoDetect() Option {
	return func(p *StandardPreprocessor) {
		p.autoDetect = true
	}
}

// Splitter splits processed data into train and test partitions. It returns
// xTrain, xTest, yTrain, yTest.
type Splitter func(x *frame.Frame, y *frame.Series, testSize float64, seed int64) (*frame.Frame, *frame.Frame, *frame.Series, *frame.Series, error)

type processConfig struct {
	imputer       *estimator.SimpleImputer
	scaler        estimator.Scaler
	labelEncoder  *estimator.LabelEncoder
	oneHotEncoder *estimator.OneHotEncoder
	splitter      Splitter

	skipImpute bool
	skipLabel  bool
	skipOneHot bool
	skipScale  bool
	skipSplit  bool

	removeMissing bool
	scaleTarget   bool
	testSize      float64
	seed          int64
	concurrency   int

	observers []model.Observer
	logger    zerolog.Logger
}

func defaultProcessConfig() *processConfig {
	return &processConfig{
		imputer:       estimator.NewSimpleImputer(estimator.Mean),
		scaler:        estimator.NewStandardScaler(),
		labelEncoder:  estimator.NewLabelEncoder(),
		oneHotEncoder: estimator.NewOneHotEncoder(),
		splitter:      ShuffledSplit,
		scaleTarget:   true,
		testSize:      defaultTestSize,
		concurrency:   1,
		logger:        zerolog.Nop(),
	}
}

// ProcessOption configures a single Process run.
type ProcessOption func(cfg *processConfig)

// WithImputer replaces the default mean imputer.
func WithImputer(im *estimator.SimpleImputer) ProcessOption {
	return func(cfg *processConfig) {
		cfg.imputer = im
	}
}

// WithoutImputer skips the imputing stage.
func WithoutImputer() ProcessOption {
	return func(cfg *processConfig) {
		cfg.skipImpute = true
	}
}

// WithScaler replaces the default standard scaler.
func WithScaler(sc estimator.Scaler) ProcessOption {
	return func(cfg *processConfig) {
		cfg.scaler = sc
	}
}

// WithoutScaler skips the scaling stage.
func WithoutScaler() ProcessOption {
	return func(cfg *processConfig) {
		cfg.skipScale = true
	}
}

// WithoutLabelEncoder skips binary label encoding.
func WithoutLabelEncoder() ProcessOption {
	return func(cfg *processConfig) {
		cfg.skipLabel = true
	}
}

// WithoutOneHotEncoder skips categorical one-hot encoding.
func WithoutOneHotEncoder() ProcessOption {
	return func(cfg *processConfig) {
		cfg.skipOneHot = true
	}
}

// WithoutSplit skips the train/test split. The result then carries X and Y
// only.
func WithoutSplit() ProcessOption {
	return func(cfg *processConfig) {
		cfg.skipSplit = true
	}
}

// WithSplitter replaces the default shuffled splitter.
func WithSplitter(split Splitter) ProcessOption {
	return func(cfg *processConfig) {
		cfg.splitter = split
	}
}

// WithTestSize sets the share of rows going to the test partition. Defaults
// to 0.25.
func WithTestSize(size float64) ProcessOption {
	return func(cfg *processConfig) {
		cfg.testSize = size
	}
}

// WithSeed seeds the split shuffle so runs are reproducible.
func WithSeed(seed int64) ProcessOption {
	return func(cfg *processConfig) {
		cfg.seed = seed
	}
}

// WithRemoveMissing drops rows that still hold missing values in
// role-assigned columns instead of failing.
func WithRemoveMissing() ProcessOption {
	return func(cfg *processConfig) {
		cfg.removeMissing = true
	}
}

// WithoutTargetScaling keeps the target column out of the scaling stage.
// Target data is typically not scaled for non-parametric models.
func WithoutTargetScaling() ProcessOption {
	return func(cfg *processConfig) {
		cfg.scaleTarget = false
	}
}

// WithConcurrency bounds how many columns a stage transforms in parallel.
// Defaults to 1.
func WithConcurrency(n int) ProcessOption {
	return func(cfg *processConfig) {
		if n > 0 {
			cfg.concurrency = n
		}
	}
}

// WithObservers attaches run observers, e.g. the drawer and measure
// packages.
func WithObservers(observers ...model.Observer) ProcessOption {
	return func(cfg *processConfig) {
		cfg.observers = append(cfg.observers, observers...)
	}
}

// WithLogger attaches a logger to the run. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) ProcessOption {
	return func(cfg *processConfig) {
		cfg.logger = logger
	}
}
