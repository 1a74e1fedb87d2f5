package preprocess

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/preprocess/model"
)

// StandardPreprocessor preprocesses a frame for downstream applications.
type StandardPreprocessor struct {
	data       *frame.Frame
	numeric    []string
	categoric  []string
	binary     []string
	autoDetect bool
}

// New creates a preprocessor over the given data. Column roles come from the
// With*Features options, or from detection when WithAutoDetect is set.
func New(data *frame.Frame, opts ...Option) (*StandardPreprocessor, error) {
	if data == nil {
		return nil, ErrDataMustBeSet
	}

	p := &StandardPreprocessor{data: data}
	for _, opt := range opts {
		opt(p)
	}

	if p.autoDetect {
		if len(p.numeric)+len(p.categoric)+len(p.binary) > 0 {
			return nil, ErrAutoDetectConflict
		}
		p.detectRoles()

		return p, nil
	}

	if err := p.validateRoles(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *StandardPreprocessor) detectRoles() {
	for _, name := range p.data.ColumnNames() {
		col, _ := p.data.Column(name)
		switch DetectRole(col) {
		case RoleNumber:
			p.numeric = append(p.numeric, name)
		case RoleCategory:
			p.categoric = append(p.categoric, name)
		case RoleBinary:
			p.binary = append(p.binary, name)
		case RoleID:
			// id columns take part in no transformation
		}
	}
}

func (p *StandardPreprocessor) validateRoles() error {
	if len(p.numeric)+len(p.categoric)+len(p.binary) == 0 {
		return ErrNoFeatures
	}

	seen := make(map[string]struct{})
	for _, names := range [][]string{p.numeric, p.categoric, p.binary} {
		for _, name := range names {
			if !p.data.HasColumn(name) {
				return errors.Wrap(ErrUnknownFeature, name)
			}
			if _, ok := seen[name]; ok {
				return errors.Wrap(ErrRoleOverlap, name)
			}
			seen[name] = struct{}{}
		}
	}

	return nil
}

// NumericFeatures returns the numeric feature names.
func (p *StandardPreprocessor) NumericFeatures() []string {
	return append([]string(nil), p.numeric...)
}

// CategoricFeatures returns the categoric feature names.
func (p *StandardPreprocessor) CategoricFeatures() []string {
	return append([]string(nil), p.categoric...)
}

// BinaryFeatures returns the binary feature names.
func (p *StandardPreprocessor) BinaryFeatures() []string {
	return append([]string(nil), p.binary...)
}

// Features returns every role-assigned column name.
func (p *StandardPreprocessor) Features() []string {
	out := make([]string, 0, len(p.numeric)+len(p.categoric)+len(p.binary))
	out = append(out, p.numeric...)
	out = append(out, p.categoric...)
	out = append(out, p.binary...)

	return out
}

func (p *StandardPreprocessor) hasFeature(name string) bool {
	for _, feature := range p.Features() {
		if feature == name {
			return true
		}
	}

	return false
}

func without(names []string, skip string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name != skip {
			out = append(out, name)
		}
	}

	return out
}

// stage is one unit of work of a Process run.
type stage struct {
	name    string
	columns []string
	skipped bool
	run     func(ctx context.Context) error
}

// Process runs the configured stages over a copy of the data and returns the
// processed result. The stages execute in a fixed order: impute, missing
// check, label encode, one-hot encode, scale, split.
func (p *StandardPreprocessor) Process(ctx context.Context, target string, opts ...ProcessOption) (*Result, error) {
	if !p.hasFeature(target) {
		return nil, errors.Wrap(ErrUnknownTarget, target)
	}

	cfg := defaultProcessConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	for _, obs := range cfg.observers {
		if err := obs.New(); err != nil {
			return nil, errors.Wrap(err, "unable to initialise observer")
		}
	}

	run := &processRun{
		pre:     p,
		cfg:     cfg,
		target:  target,
		working: p.data.Clone(),
	}

	if err := run.execute(ctx); err != nil {
		return nil, err
	}

	for _, obs := range cfg.observers {
		if err := obs.Finish(); err != nil {
			return nil, errors.Wrap(err, "unable to finish observer")
		}
	}

	return run.result(), nil
}

// processRun holds the mutable state of one Process call.
type processRun struct {
	pre     *StandardPreprocessor
	cfg     *processConfig
	target  string
	working *frame.Frame

	x      *frame.Frame
	y      *frame.Series
	xTrain *frame.Frame
	xTest  *frame.Frame
	yTrain *frame.Series
	yTest  *frame.Series

	targetEncoded bool
	targetScaled  bool
}

func (r *processRun) execute(ctx context.Context) error {
	scaled := r.pre.numeric
	if !r.cfg.scaleTarget {
		scaled = without(r.pre.numeric, r.target)
	}

	stages := []stage{
		{
			name:    "impute",
			columns: without(r.pre.numeric, r.target),
			skipped: r.cfg.skipImpute,
			run:     r.impute,
		},
		{
			name:    "check-missing",
			columns: r.pre.Features(),
			run:     r.checkMissing,
		},
		{
			name:    "label-encode",
			columns: r.pre.binary,
			skipped: r.cfg.skipLabel,
			run:     r.labelEncode,
		},
		{
			name:    "one-hot",
			columns: without(r.pre.categoric, r.target),
			skipped: r.cfg.skipOneHot,
			run:     r.oneHotEncode,
		},
		{
			name:    "scale",
			columns: scaled,
			skipped: r.cfg.skipScale,
			run:     r.scale,
		},
		{
			name:    "split",
			skipped: r.cfg.skipSplit,
			run:     r.split,
		},
	}

	parent := model.StartStage
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, st.name)
		}

		info := &model.StageInfo{Name: st.name, Columns: st.columns, Skipped: st.skipped}
		for _, obs := range r.cfg.observers {
			if err := obs.PrepareStage(parent, info); err != nil {
				return errors.Wrapf(err, "unable to prepare stage %s", st.name)
			}
		}

		var elapsed time.Duration
		if !st.skipped {
			start := time.Now()
			if err := st.run(ctx); err != nil {
				return errors.Wrap(err, st.name)
			}
			elapsed = time.Since(start)
		}
		r.cfg.logger.Debug().
			Str("stage", st.name).
			Bool("skipped", st.skipped).
			Dur("elapsed", elapsed).
			Int("rows", r.working.NumRows()).
			Msg("stage done")

		for _, obs := range r.cfg.observers {
			if err := obs.OnStageDone(info, elapsed); err != nil {
				return errors.Wrapf(err, "unable to report stage %s", st.name)
			}
		}
		parent = info
	}

	// the split stage always builds x and y, even when splitting is skipped
	if r.cfg.skipSplit {
		return r.buildXY()
	}

	return nil
}

// transformColumns replaces each named column with the output of fn, fanning
// out over columns up to the configured concurrency.
func (r *processRun) transformColumns(ctx context.Context, columns []string, fn func(col *frame.Series) (*frame.Series, error)) error {
	replacements := make([]*frame.Series, len(columns))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(r.cfg.concurrency)
	for i, name := range columns {
		i, name := i, name
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrap(err, name)
			}
			col, err := r.working.Column(name)
			if err != nil {
				return err
			}
			out, err := fn(col)
			if err != nil {
				return err
			}
			replacements[i] = out

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	for _, col := range replacements {
		if err := r.working.SetColumn(col); err != nil {
			return err
		}
	}

	return nil
}

// impute fills missing cells of the numeric features, skipping the target.
func (r *processRun) impute(ctx context.Context) error {
	columns := without(r.pre.numeric, r.target)
	for _, name := range columns {
		col, err := r.working.Column(name)
		if err != nil {
			return err
		}
		if err := r.cfg.imputer.Fit(col); err != nil {
			return err
		}
	}

	return r.transformColumns(ctx, columns, r.cfg.imputer.Transform)
}

// checkMissing finds missing cells among the role-assigned columns, and
// either drops the offending rows or fails.
func (r *processRun) checkMissing(context.Context) error {
	var withMissing []string
	for _, name := range r.pre.Features() {
		col, err := r.working.Column(name)
		if err != nil {
			return err
		}
		if col.HasMissing() {
			withMissing = append(withMissing, name)
		}
	}
	if len(withMissing) == 0 {
		return nil
	}
	if !r.cfg.removeMissing {
		return errors.Wrapf(ErrMissingValues, "columns [%s]", strings.Join(withMissing, ", "))
	}

	drop := make(map[int]struct{})
	for _, name := range withMissing {
		col, err := r.working.Column(name)
		if err != nil {
			return err
		}
		for row := 0; row < col.Len(); row++ {
			if col.At(row).IsMissing() {
				drop[row] = struct{}{}
			}
		}
	}

	rows := make([]int, 0, len(drop))
	for row := range drop {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	working, err := r.working.DropRows(rows)
	if err != nil {
		return err
	}
	r.working = working

	return nil
}

// labelEncode turns binary features into 0/1 columns.
func (r *processRun) labelEncode(ctx context.Context) error {
	for _, name := range r.pre.binary {
		col, err := r.working.Column(name)
		if err != nil {
			return err
		}
		if err := r.cfg.labelEncoder.Fit(col); err != nil {
			return err
		}
		if name == r.target {
			r.targetEncoded = true
		}
	}

	return r.transformColumns(ctx, r.pre.binary, r.cfg.labelEncoder.Transform)
}

// oneHotEncode expands categoric features, skipping the target, into
// indicator columns appended after the surviving columns.
func (r *processRun) oneHotEncode(context.Context) error {
	for _, name := range without(r.pre.categoric, r.target) {
		col, err := r.working.Column(name)
		if err != nil {
			return err
		}
		indicators, err := r.cfg.oneHotEncoder.FitTransform(col)
		if err != nil {
			return err
		}
		if err := r.working.DropColumn(name); err != nil {
			return err
		}
		for _, indicator := range indicators {
			if err := r.working.AddColumn(indicator); err != nil {
				return err
			}
		}
	}

	return nil
}

// scale runs the scaler over the numeric features.
func (r *processRun) scale(ctx context.Context) error {
	columns := r.pre.numeric
	if !r.cfg.scaleTarget {
		columns = without(r.pre.numeric, r.target)
	}

	for _, name := range columns {
		col, err := r.working.Column(name)
		if err != nil {
			return err
		}
		if err := r.cfg.scaler.Fit(name, col.Floats()); err != nil {
			return err
		}
		if name == r.target {
			r.targetScaled = true
		}
	}

	return r.transformColumns(ctx, columns, func(col *frame.Series) (*frame.Series, error) {
		scaled, err := r.cfg.scaler.Transform(col.Name(), col.Floats())
		if err != nil {
			return nil, err
		}

		return frame.FloatSeries(col.Name(), scaled), nil
	})
}

func (r *processRun) buildXY() error {
	x, err := r.working.Select(without(r.working.ColumnNames(), r.target)...)
	if err != nil {
		return err
	}
	y, err := r.working.Column(r.target)
	if err != nil {
		return err
	}

	r.x = x
	r.y = y.Clone()

	return nil
}

// split separates features from target and hands them to the splitter.
func (r *processRun) split(context.Context) error {
	if err := r.buildXY(); err != nil {
		return err
	}

	xTrain, xTest, yTrain, yTest, err := r.cfg.splitter(r.x, r.y, r.cfg.testSize, r.cfg.seed)
	if err != nil {
		return err
	}
	r.xTrain, r.xTest, r.yTrain, r.yTest = xTrain, xTest, yTrain, yTest

	return nil
}

func (r *processRun) result() *Result {
	res := &Result{
		X:      r.x,
		Y:      r.y,
		XTrain: r.xTrain,
		XTest:  r.xTest,
		YTrain: r.yTrain,
		YTest:  r.yTest,
		Artifacts: Artifacts{
			Target:          r.target,
			TargetRole:      r.pre.roleOf(r.target),
			NumericFeatures: r.pre.NumericFeatures(),
			TargetScaled:    r.targetScaled,
			TargetEncoded:   r.targetEncoded,
		},
	}
	if !r.cfg.skipImpute {
		res.Artifacts.Imputer = r.cfg.imputer
	}
	if !r.cfg.skipScale {
		res.Artifacts.Scaler = r.cfg.scaler
	}
	if !r.cfg.skipLabel {
		res.Artifacts.LabelEncoder = r.cfg.labelEncoder
	}
	if !r.cfg.skipOneHot {
		res.Artifacts.OneHotEncoder = r.cfg.oneHotEncoder
	}

	return res
}

func (p *StandardPreprocessor) roleOf(name string) Role {
	for _, feature := range p.numeric {
		if feature == name {
			return RoleNumber
		}
	}
	for _, feature := range p.categoric {
		if feature == name {
			return RoleCategory
		}
	}

	return RoleBinary
}
