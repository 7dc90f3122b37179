// Package analysis inspects sampled trajectories.
//
//   - [PowerSpectrum] and [DominantFrequency]: FFT of a sampled series
//   - [PhasePortrait]: position against velocity
//   - [Summarize]: per-series extrema
package analysis
