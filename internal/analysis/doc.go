// Package analysis provides statistics over energy trajectories.
//
// All functions take the per-step reduced energies produced by a run and an
// equilibration count of leading samples to discard:
//
//   - [Summarize]: mean, standard deviation, extremes and block standard error
//   - [BlockAverage]: standard error of the mean from non-overlapping blocks
//   - [CumulativeMean]: running average, useful for judging equilibration
//   - [Autocorrelation]: normalized autocorrelation at a given lag
//
// # Error Bars
//
// Successive Metropolis samples are correlated, so the naive standard error
// underestimates the uncertainty. Block averaging groups the samples into
// blocks longer than the correlation time:
//
//	s, err := analysis.Summarize(trajectory, 1000, 10)
//	fmt.Printf("%.4f +/- %.4f\n", s.Mean, s.StdErr)
package analysis
