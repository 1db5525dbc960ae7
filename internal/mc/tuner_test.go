package mc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mkumar097/MonteCarloProject/internal/mc"
)

var _ = Describe("Tuner", func() {
	tuner := mc.DefaultTuner()

	DescribeTable("rescales the maximum displacement",
		func(trials, accepted int, factor float64) {
			d := &mc.Displacement{Max: 0.1, Trials: trials, Accepted: accepted}

			Expect(tuner.Adjust(d)).To(BeTrue())
			Expect(d.Max).To(BeNumerically("~", 0.1*factor, 1e-15))
			Expect(d.Trials).To(BeZero())
			Expect(d.Accepted).To(BeZero())
		},
		Entry("rate 0.30 shrinks", 100, 30, 0.8),
		Entry("rate 0.38 unchanged", 100, 38, 1.0),
		Entry("rate 0.40 unchanged", 100, 40, 1.0),
		Entry("rate 0.42 unchanged", 100, 42, 1.0),
		Entry("rate 0.50 grows", 100, 50, 1.2),
		Entry("rate 0 shrinks", 10, 0, 0.8),
		Entry("rate 1 grows", 1, 1, 1.2),
	)

	It("does nothing without trials", func() {
		d := &mc.Displacement{Max: 0.1}
		Expect(tuner.Adjust(d)).To(BeFalse())
		Expect(*d).To(Equal(mc.Displacement{Max: 0.1}))
	})

	It("reports the running acceptance rate", func() {
		Expect(mc.Displacement{}.Rate()).To(BeZero())
		Expect(mc.Displacement{Trials: 4, Accepted: 1}.Rate()).To(Equal(0.25))
	})
})
