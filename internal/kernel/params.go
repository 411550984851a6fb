package kernel

// GSLParams holds solver tolerances and iteration limits.
type GSLParams struct {
	NIteration                float64
	IntegrationGaussKronrod   float64
	IntegrationEpsrel         float64
	IntegrationDistanceEpsrel float64
	IntegrationSigmaREpsrel   float64
	RootEpsrel                float64
	RootNIteration            float64
	ODEGrowthEpsrel           float64
	EpsScalefacGrowth         float64
	HMMMin                    float64
	HMMMax                    float64
	HMEpsabs                  float64
	HMEpsrel                  float64
	HMLimit                   float64
}

// SplineParams holds spline sampling densities and ranges.
type SplineParams struct {
	ASplineNA        float64
	ASplineNLog      float64
	ASplineMin       float64
	ASplineMinLog    float64
	ASplineMax       float64
	ASplineMinLogPK  float64
	ASplineMinPK     float64
	ASplineNAPK      float64
	ASplineNLogPK    float64
	LogMSplineDelta  float64
	LogMSplineNM     float64
	LogMSplineMin    float64
	LogMSplineMax    float64
	KMin             float64
	KMax             float64
	KMaxSpline       float64
	NK               float64
	DLogKIntegration float64

	ASplineType    string
	KSplineType    string
	MSplineType    string
	DSplineType    string
	PNLSplineType  string
	PLinSplineType string
	CorrSplineType string
}

// DefaultGSLParams returns the compiled-in solver defaults.
func DefaultGSLParams() GSLParams {
	return GSLParams{
		NIteration:                1000,
		IntegrationGaussKronrod:   41,
		IntegrationEpsrel:         1e-4,
		IntegrationDistanceEpsrel: 1e-10,
		IntegrationSigmaREpsrel:   1e-5,
		RootEpsrel:                1e-4,
		RootNIteration:            1000,
		ODEGrowthEpsrel:           1e-6,
		EpsScalefacGrowth:         1e-6,
		HMMMin:                    1e7,
		HMMMax:                    1e17,
		HMEpsabs:                  0,
		HMEpsrel:                  1e-4,
		HMLimit:                   1000,
	}
}

// DefaultSplineParams returns the compiled-in spline defaults.
func DefaultSplineParams() SplineParams {
	return SplineParams{
		ASplineNA:        250,
		ASplineNLog:      250,
		ASplineMin:       0.1,
		ASplineMinLog:    1e-4,
		ASplineMax:       1.0,
		ASplineMinLogPK:  0.01,
		ASplineMinPK:     0.1,
		ASplineNAPK:      40,
		ASplineNLogPK:    11,
		LogMSplineDelta:  0.025,
		LogMSplineNM:     50,
		LogMSplineMin:    6,
		LogMSplineMax:    17,
		KMin:             5e-5,
		KMax:             1e3,
		KMaxSpline:       50,
		NK:               167,
		DLogKIntegration: 0.025,

		ASplineType:    SplineAkima,
		KSplineType:    SplineAkima,
		MSplineType:    SplineAkima,
		DSplineType:    SplineAkima,
		PNLSplineType:  SplineBicubic,
		PLinSplineType: SplineBicubic,
		CorrSplineType: SplineAkima,
	}
}

// Fields maps each GSL parameter name to its storage.
func (p *GSLParams) Fields() map[string]*float64 {
	return map[string]*float64{
		"N_ITERATION":                      &p.NIteration,
		"INTEGRATION_GAUSS_KRONROD_POINTS": &p.IntegrationGaussKronrod,
		"INTEGRATION_EPSREL":               &p.IntegrationEpsrel,
		"INTEGRATION_DISTANCE_EPSREL":      &p.IntegrationDistanceEpsrel,
		"INTEGRATION_SIGMAR_EPSREL":        &p.IntegrationSigmaREpsrel,
		"ROOT_EPSREL":                      &p.RootEpsrel,
		"ROOT_N_ITERATION":                 &p.RootNIteration,
		"ODE_GROWTH_EPSREL":                &p.ODEGrowthEpsrel,
		"EPS_SCALEFAC_GROWTH":              &p.EpsScalefacGrowth,
		"HM_MMIN":                          &p.HMMMin,
		"HM_MMAX":                          &p.HMMMax,
		"HM_EPSABS":                        &p.HMEpsabs,
		"HM_EPSREL":                        &p.HMEpsrel,
		"HM_LIMIT":                         &p.HMLimit,
	}
}

// Fields maps each numeric spline parameter name to its storage.
func (p *SplineParams) Fields() map[string]*float64 {
	return map[string]*float64{
		"A_SPLINE_NA":        &p.ASplineNA,
		"A_SPLINE_NLOG":      &p.ASplineNLog,
		"A_SPLINE_MIN":       &p.ASplineMin,
		"A_SPLINE_MINLOG":    &p.ASplineMinLog,
		"A_SPLINE_MAX":       &p.ASplineMax,
		"A_SPLINE_MINLOG_PK": &p.ASplineMinLogPK,
		"A_SPLINE_MIN_PK":    &p.ASplineMinPK,
		"A_SPLINE_NA_PK":     &p.ASplineNAPK,
		"A_SPLINE_NLOG_PK":   &p.ASplineNLogPK,
		"LOGM_SPLINE_DELTA":  &p.LogMSplineDelta,
		"LOGM_SPLINE_NM":     &p.LogMSplineNM,
		"LOGM_SPLINE_MIN":    &p.LogMSplineMin,
		"LOGM_SPLINE_MAX":    &p.LogMSplineMax,
		"K_MIN":              &p.KMin,
		"K_MAX":              &p.KMax,
		"K_MAX_SPLINE":       &p.KMaxSpline,
		"N_K":                &p.NK,
		"DLOGK_INTEGRATION":  &p.DLogKIntegration,
	}
}

// Types maps each spline type parameter name to its storage.
func (p *SplineParams) Types() map[string]*string {
	return map[string]*string{
		"A_SPLINE_TYPE":    &p.ASplineType,
		"K_SPLINE_TYPE":    &p.KSplineType,
		"M_SPLINE_TYPE":    &p.MSplineType,
		"D_SPLINE_TYPE":    &p.DSplineType,
		"PNL_SPLINE_TYPE":  &p.PNLSplineType,
		"PLIN_SPLINE_TYPE": &p.PLinSplineType,
		"CORR_SPLINE_TYPE": &p.CorrSplineType,
	}
}

// GSLDefaults returns the compiled-in GSL defaults keyed by name.
func GSLDefaults() map[string]float64 {
	p := DefaultGSLParams()
	return values(p.Fields())
}

// SplineDefaults returns the compiled-in numeric spline defaults and the
// spline types, both keyed by name.
func SplineDefaults() (map[string]float64, map[string]string) {
	p := DefaultSplineParams()
	types := make(map[string]string)
	for k, v := range p.Types() {
		types[k] = *v
	}
	return values(p.Fields()), types
}

func values(fields map[string]*float64) map[string]float64 {
	out := make(map[string]float64, len(fields))
	for k, v := range fields {
		out[k] = *v
	}
	return out
}
