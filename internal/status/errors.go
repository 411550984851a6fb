package status

import (
	"errors"
	"fmt"
)

// Sentinels for each error kind. A *KernelError matches the sentinel of
// its kind through errors.Is.
var (
	ErrUnknown           = errors.New("status: unknown kernel error")
	ErrClass             = errors.New("status: class error")
	ErrInconsistent      = errors.New("status: inconsistent configuration")
	ErrIntegration       = errors.New("status: integration failure")
	ErrLinspace          = errors.New("status: linspace construction failure")
	ErrMemory            = errors.New("status: out of memory")
	ErrRoot              = errors.New("status: root finding failure")
	ErrSpline            = errors.New("status: spline construction failure")
	ErrSplineEval        = errors.New("status: spline evaluation failure")
	ErrDistance          = errors.New("status: distance computation failure")
	ErrMassFunc          = errors.New("status: mass function failure")
	ErrMassFuncInterp    = errors.New("status: mass function interpolation failure")
	ErrParameter         = errors.New("status: invalid parameter")
	ErrNeutrino          = errors.New("status: neutrino integration failure")
	ErrEmulatorBounds    = errors.New("status: emulator bounds violation")
	ErrMissingConfigFile = errors.New("status: missing configuration file")
)

// Validation errors raised before any kernel call.
var (
	// ErrShape indicates inconsistent dimensionality or lengths between
	// grids and value arrays.
	ErrShape = errors.New("status: shape mismatch")

	// ErrType indicates an argument of the wrong kind, such as a sequence
	// passed where only a scalar is accepted.
	ErrType = errors.New("status: invalid argument type")
)

// Parameter store errors.
var (
	ErrUnknownKey   = errors.New("status: unknown parameter")
	ErrImmutableKey = errors.New("status: immutable parameter")
)

var kindSentinels = map[Kind]error{
	UnknownKernelError:               ErrUnknown,
	ClassError:                       ErrClass,
	InconsistentConfiguration:        ErrInconsistent,
	IntegrationFailure:               ErrIntegration,
	LinspaceConstructionFailure:      ErrLinspace,
	OutOfMemory:                      ErrMemory,
	RootFindingFailure:               ErrRoot,
	SplineConstructionFailure:        ErrSpline,
	SplineEvaluationFailure:          ErrSplineEval,
	DistanceComputationFailure:       ErrDistance,
	MassFunctionFailure:              ErrMassFunc,
	MassFunctionInterpolationFailure: ErrMassFuncInterp,
	InvalidParameter:                 ErrParameter,
	NeutrinoIntegrationFailure:       ErrNeutrino,
	EmulatorBoundsViolation:          ErrEmulatorBounds,
	MissingConfigurationFile:         ErrMissingConfigFile,
}

// KernelError is a failed kernel call.
type KernelError struct {
	Kind    Kind
	Code    Code
	Message string
}

func (e *KernelError) Error() string {
	if e.Kind == UnknownKernelError {
		return fmt.Sprintf("kernel error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("kernel error %s (%d): %s", e.Kind, e.Code, e.Message)
}

// Is reports whether target is the sentinel for the error's kind.
func (e *KernelError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// ConfigError is a rejected parameter assignment.
type ConfigError struct {
	Key     string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("parameter %s: %v", e.Key, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// Inconsistentf builds an InconsistentConfiguration error that did not come
// from a kernel call, such as a rejected mass definition.
func Inconsistentf(format string, args ...any) error {
	return &KernelError{
		Kind:    InconsistentConfiguration,
		Code:    Inconsistent,
		Message: fmt.Sprintf(format, args...),
	}
}
