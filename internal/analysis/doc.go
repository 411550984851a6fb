// Package analysis sweeps halo and cosmology observables over grids and
// renders them as tables and terminal charts.
//
// Each [Quantity] maps to one sweep:
//
//   - [MassFunction]: dn/dlog10M over a log-spaced mass grid
//   - [HaloBias]: linear halo bias over the same grid
//   - [Sigma]: sigma(M)
//   - [Growth]: the linear growth factor D(a)
//   - [Power]: the linear matter power spectrum P(k, a)
//   - [Correlation]: the linear correlation function xi(r), the FFTLog
//     transform of P(k)
//
// # Usage
//
//	c, _ := cfg.NewCosmology()
//	curve, err := analysis.Sweep(c, analysis.MassFunction, opts)
//	fmt.Println(curve.Plot(80, 15))
package analysis
