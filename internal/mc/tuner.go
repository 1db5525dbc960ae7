package mc

// Tuner scales the maximum displacement toward an acceptance-rate window.
type Tuner struct {
	Low    float64
	High   float64
	Shrink float64
	Grow   float64
}

// DefaultTuner targets an acceptance rate between 38% and 42%.
func DefaultTuner() Tuner {
	return Tuner{Low: 0.38, High: 0.42, Shrink: 0.8, Grow: 1.2}
}

// Adjust rescales d.Max from the counters accumulated since the last call and
// resets them. With no trials it does nothing and reports false.
func (t Tuner) Adjust(d *Displacement) bool {
	if d.Trials == 0 {
		return false
	}

	rate := float64(d.Accepted) / float64(d.Trials)
	switch {
	case rate < t.Low:
		d.Max *= t.Shrink
	case rate > t.High:
		d.Max *= t.Grow
	}

	d.Trials = 0
	d.Accepted = 0
	return true
}
