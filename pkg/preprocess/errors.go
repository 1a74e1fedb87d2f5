package preprocess

import "github.com/pkg/errors"

var (
	// ErrDataMustBeSet is returned when the input frame is nil.
	ErrDataMustBeSet = errors.New("data must be set")
	// ErrNoFeatures is returned when every role list is empty.
	ErrNoFeatures = errors.New("all feature lists empty, must supply at least 1 feature")
	// ErrUnknownFeature is returned when a role list names a column the data
	// does not have.
	ErrUnknownFeature = errors.New("feature is not a column of the data")
	// ErrRoleOverlap is returned when a column appears in more than one role
	// list.
	ErrRoleOverlap = errors.New("feature assigned to more than one role")
	// ErrAutoDetectConflict is returned when feature lists are supplied
	// together with automatic detection.
	ErrAutoDetectConflict = errors.New("feature lists cannot be combined with auto detection")
	// ErrUnknownTarget is returned when the target belongs to no role list.
	ErrUnknownTarget = errors.New("target must be a numeric, categoric or binary feature")
	// ErrMissingValues is returned when role-assigned columns still hold
	// missing values and removal was not requested.
	ErrMissingValues = errors.New("missing values found, remove them, impute numeric columns, or enable removal")
	// ErrTestSize is returned when the test share is outside (0, 1).
	ErrTestSize = errors.New("test size must be between 0 and 1")
)
