package mc_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mkumar097/MonteCarloProject/internal/energy"
	"github.com/mkumar097/MonteCarloProject/internal/geometry"
	"github.com/mkumar097/MonteCarloProject/internal/mc"
)

type failingEnergy struct{}

func (failingEnergy) ParticleEnergy(int, geometry.Vec3, []geometry.Vec3) (float64, error) {
	return 0, energy.ErrCoincidentParticles
}

var _ = Describe("Accept", func() {
	It("accepts downhill moves without drawing", func() {
		src := &scriptedSource{}
		for _, beta := range []float64{0, 0.5, 1, 100} {
			Expect(mc.Accept(-1e-9, beta, src)).To(BeTrue())
			Expect(mc.Accept(-50, beta, src)).To(BeTrue())
		}
	})

	It("compares the draw against exp(-beta*deltaE)", func() {
		p := math.Exp(-1.0)
		Expect(mc.Accept(1, 1, &scriptedSource{floats: []float64{p - 1e-9}})).To(BeTrue())
		Expect(mc.Accept(1, 1, &scriptedSource{floats: []float64{p}})).To(BeFalse())
	})

	It("always accepts a zero change", func() {
		Expect(mc.Accept(0, 3, &scriptedSource{floats: []float64{0.999999}})).To(BeTrue())
	})

	It("never accepts when the probability underflows", func() {
		Expect(mc.Accept(1e6, 10, &scriptedSource{floats: []float64{0}})).To(BeFalse())
	})

	DescribeTable("converges to the Boltzmann factor",
		func(deltaE, beta float64) {
			src := rand.New(rand.NewSource(2024))
			const trials = 200000
			accepted := 0
			for i := 0; i < trials; i++ {
				if mc.Accept(deltaE, beta, src) {
					accepted++
				}
			}
			want := math.Exp(-beta * deltaE)
			Expect(float64(accepted) / trials).To(BeNumerically("~", want, 0.02*want+0.002))
		},
		Entry("mild", 0.5, 1.0),
		Entry("steep", 2.0, 1.5),
		Entry("hot", 1.0, 0.2),
	)
})

var _ = Describe("Sampler", func() {
	const box = 10.0

	var (
		st   *mc.State
		disp *mc.Displacement
	)

	BeforeEach(func() {
		st = &mc.State{
			Coords:     []geometry.Vec3{{0, 0, 0}, {1, 1, 1}},
			PairEnergy: -2,
		}
		disp = &mc.Displacement{Max: 0.5}
	})

	It("commits a downhill move and updates the running energy", func() {
		model := &linearEnergy{k: 1}
		// particle 1; u=0 on x gives d_x = -0.5, y and z unchanged
		src := &scriptedSource{ints: []int{1}, floats: []float64{0, 0.5, 0.5}}
		s := mc.NewSampler(model, src, 1, box)

		move, err := s.Step(st, disp)
		Expect(err).NotTo(HaveOccurred())

		Expect(move.Particle).To(Equal(1))
		Expect(move.Accepted).To(BeTrue())
		Expect(move.DeltaE).To(BeNumerically("~", -0.5, 1e-12))
		Expect(st.Coords[1]).To(Equal(geometry.Vec3{0.5, 1, 1}))
		Expect(st.PairEnergy).To(BeNumerically("~", -2.5, 1e-12))
		Expect(*disp).To(Equal(mc.Displacement{Max: 0.5, Trials: 1, Accepted: 1}))
		Expect(model.calls).To(Equal(2))
	})

	It("rejects an uphill move when the draw exceeds the Boltzmann factor", func() {
		model := &linearEnergy{k: 10}
		// d_x = +0.5, ΔE = 5, exp(-5) ≈ 0.0067 < 0.9
		src := &scriptedSource{ints: []int{0}, floats: []float64{1 - 1e-12, 0.5, 0.5, 0.9}}
		s := mc.NewSampler(model, src, 1, box)

		move, err := s.Step(st, disp)
		Expect(err).NotTo(HaveOccurred())

		Expect(move.Accepted).To(BeFalse())
		Expect(move.DeltaE).To(BeNumerically(">", 0))
		Expect(st.Coords[0]).To(Equal(geometry.Vec3{0, 0, 0}))
		Expect(st.PairEnergy).To(Equal(-2.0))
		Expect(*disp).To(Equal(mc.Displacement{Max: 0.5, Trials: 1, Accepted: 0}))
	})

	It("wraps an accepted move back into the box", func() {
		st.Coords[0] = geometry.Vec3{4.9, -4.9, 0}
		model := &linearEnergy{k: 1}
		// d = (+0.5, -0.5, 0): both x and y leave the box
		src := &scriptedSource{ints: []int{0}, floats: []float64{1 - 1e-12, 0, 0.5}}
		s := mc.NewSampler(model, src, 1, box)

		move, err := s.Step(st, disp)
		Expect(err).NotTo(HaveOccurred())
		Expect(move.Accepted).To(BeTrue())

		Expect(geometry.InBox(st.Coords[0], box)).To(BeTrue())
		Expect(st.Coords[0][0]).To(BeNumerically("~", -4.6, 1e-9))
		Expect(st.Coords[0][1]).To(BeNumerically("~", 4.6, 1e-9))
	})

	It("keeps every moved particle inside the box over a long chain", func() {
		src := rand.New(rand.NewSource(9))
		coords := make([]geometry.Vec3, 20)
		for i := range coords {
			coords[i] = geometry.Vec3{
				(0.5 - src.Float64()) * 4,
				(0.5 - src.Float64()) * 4,
				(0.5 - src.Float64()) * 4,
			}
		}
		eng := energy.NewEngine(4, 4.0/3)
		total, err := eng.Total(coords)
		Expect(err).NotTo(HaveOccurred())

		chain := &mc.State{Coords: coords, PairEnergy: total}
		d := &mc.Displacement{Max: 1.5}
		s := mc.NewSampler(eng, src, 1/0.9, 4)

		for step := 0; step < 2000; step++ {
			move, err := s.Step(chain, d)
			Expect(err).NotTo(HaveOccurred())
			if move.Accepted {
				Expect(geometry.InBox(chain.Coords[move.Particle], 4)).To(BeTrue())
			}
		}
		Expect(d.Trials).To(Equal(2000))
	})

	It("proposes the current position when the maximum displacement is zero", func() {
		disp.Max = 0
		model := &linearEnergy{k: 3}
		src := &scriptedSource{ints: []int{1}, floats: []float64{0.1, 0.7, 0.3, 0.99}}
		s := mc.NewSampler(model, src, 2, box)

		move, err := s.Step(st, disp)
		Expect(err).NotTo(HaveOccurred())
		Expect(move.To).To(Equal(move.From))
		Expect(move.DeltaE).To(Equal(0.0))
		Expect(move.Accepted).To(BeTrue())
	})

	It("surfaces energy errors without touching the state", func() {
		src := &scriptedSource{ints: []int{0}}
		s := mc.NewSampler(failingEnergy{}, src, 1, box)

		_, err := s.Step(st, disp)
		Expect(errors.Is(err, energy.ErrCoincidentParticles)).To(BeTrue())
		Expect(disp.Trials).To(BeZero())
		Expect(st.PairEnergy).To(Equal(-2.0))
	})
})
