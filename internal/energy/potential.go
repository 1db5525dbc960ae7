package energy

import "math"

// LennardJones returns the reduced pair potential 4(r^-12 - r^-6).
// It is undefined at r = 0; the Engine rejects that case before calling it.
func LennardJones(r float64) float64 {
	inv2 := 1.0 / (r * r)
	inv6 := inv2 * inv2 * inv2
	return 4 * (inv6*inv6 - inv6)
}

// TailCorrection returns the analytic correction for pairs beyond the cutoff,
// assuming uniform density there:
//
//	(8πN²)/(3V) · ((1/3)rc^-9 − rc^-3)
func TailCorrection(n int, volume, cutoff float64) float64 {
	r3 := math.Pow(1.0/cutoff, 3)
	r9 := r3 * r3 * r3
	n2 := float64(n) * float64(n)
	return (8.0 * math.Pi * n2) / (3.0 * volume) * ((1.0/3.0)*r9 - r3)
}
