package status

// Code is an integer status returned by a kernel call. Zero means success.
type Code = int

// Kernel status codes.
const (
	OK                Code = 0
	Memory            Code = 1025
	Linspace          Code = 1026
	Inconsistent      Code = 1027
	Spline            Code = 1028
	SplineEv          Code = 1029
	Integ             Code = 1030
	Root              Code = 1031
	Class             Code = 1032
	ComputeChi        Code = 1033
	MF                Code = 1034
	HMFInterp         Code = 1035
	Parameters        Code = 1036
	NuInt             Code = 1037
	EmulatorBound     Code = 1038
	MissingConfigFile Code = 1039
)

// Kind classifies a kernel failure.
type Kind int

const (
	UnknownKernelError Kind = iota
	ClassError
	InconsistentConfiguration
	IntegrationFailure
	LinspaceConstructionFailure
	OutOfMemory
	RootFindingFailure
	SplineConstructionFailure
	SplineEvaluationFailure
	DistanceComputationFailure
	MassFunctionFailure
	MassFunctionInterpolationFailure
	InvalidParameter
	NeutrinoIntegrationFailure
	EmulatorBoundsViolation
	MissingConfigurationFile
)

var kindNames = map[Kind]string{
	UnknownKernelError:               "UnknownKernelError",
	ClassError:                       "ClassError",
	InconsistentConfiguration:        "InconsistentConfiguration",
	IntegrationFailure:               "IntegrationFailure",
	LinspaceConstructionFailure:      "LinspaceConstructionFailure",
	OutOfMemory:                      "OutOfMemory",
	RootFindingFailure:               "RootFindingFailure",
	SplineConstructionFailure:        "SplineConstructionFailure",
	SplineEvaluationFailure:          "SplineEvaluationFailure",
	DistanceComputationFailure:       "DistanceComputationFailure",
	MassFunctionFailure:              "MassFunctionFailure",
	MassFunctionInterpolationFailure: "MassFunctionInterpolationFailure",
	InvalidParameter:                 "InvalidParameter",
	NeutrinoIntegrationFailure:       "NeutrinoIntegrationFailure",
	EmulatorBoundsViolation:          "EmulatorBoundsViolation",
	MissingConfigurationFile:         "MissingConfigurationFile",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

var codeKinds = map[Code]Kind{
	Class:             ClassError,
	Inconsistent:      InconsistentConfiguration,
	Integ:             IntegrationFailure,
	Linspace:          LinspaceConstructionFailure,
	Memory:            OutOfMemory,
	Root:              RootFindingFailure,
	Spline:            SplineConstructionFailure,
	SplineEv:          SplineEvaluationFailure,
	ComputeChi:        DistanceComputationFailure,
	MF:                MassFunctionFailure,
	HMFInterp:         MassFunctionInterpolationFailure,
	Parameters:        InvalidParameter,
	NuInt:             NeutrinoIntegrationFailure,
	EmulatorBound:     EmulatorBoundsViolation,
	MissingConfigFile: MissingConfigurationFile,
}

// KindOf returns the kind a status code maps to. Unrecognized codes map to
// UnknownKernelError.
func KindOf(code Code) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return UnknownKernelError
}
