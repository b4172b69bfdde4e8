// Package analysis looks at recorded telemetry after a run.
//
//   - [PowerSpectrum]: magnitude spectrum of a column
//   - [DominantFrequency]: strongest oscillation, e.g. a tumble or a
//     controller limit cycle in the angular velocity
//   - [Summarize]: min, max, mean and standard deviation
//
// Typical use on a stored run:
//
//	wz, _ := tel.Column("wz")
//	hz := analysis.DominantFrequency(wz, meta.Dt)
package analysis
