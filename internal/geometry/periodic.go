package geometry

import "math"

// MinimumImage folds a separation vector onto the nearest periodic image:
// d - L*round(d/L), component-wise.
func MinimumImage(d Vec3, boxLength float64) Vec3 {
	for k := range d {
		d[k] -= boxLength * math.Round(d[k]/boxLength)
	}
	return d
}

// MinimumImageDistance returns the distance between ri and the closest
// periodic image of rj.
func MinimumImageDistance(ri, rj Vec3, boxLength float64) float64 {
	return MinimumImage(ri.Sub(rj), boxLength).Norm()
}

// Wrap folds a position into the primary cell [-L/2, L/2).
func Wrap(r Vec3, boxLength float64) Vec3 {
	half := boxLength / 2
	for k := range r {
		w := r[k] - boxLength*math.Floor(r[k]/boxLength+0.5)
		// floor rounding can land exactly on the open edge
		if w >= half {
			w -= boxLength
		}
		if w < -half {
			w = -half
		}
		r[k] = w
	}
	return r
}

// InBox reports whether every component of r lies in [-L/2, L/2).
func InBox(r Vec3, boxLength float64) bool {
	half := boxLength / 2
	for _, c := range r {
		if c < -half || c >= half {
			return false
		}
	}
	return true
}
