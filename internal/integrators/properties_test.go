package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odesolve/internal/dynamo"
	"github.com/san-kum/odesolve/internal/integrators"
)

var labRHS = dynamo.Func(func(x, y float64) float64 {
	return (1 - x*x) / (x * y)
})

var _ = Describe("fixed-step integrators", func() {
	methods := map[string]dynamo.Integrator{
		"euler": integrators.NewEuler(),
		"rk4":   integrators.NewRK4(),
	}

	for name, integ := range methods {
		name, integ := name, integ

		Context(name, func() {
			It("starts at the initial point and advances x by h", func() {
				p := dynamo.Problem{X0: 0.5, Xn: 3, Y0: -1, H: 0.25}
				traj, err := integ.Integrate(dynamo.Func(func(x, y float64) float64 { return math.Cos(x) }), p)
				Expect(err).NotTo(HaveOccurred())

				Expect(traj.Points[0]).To(Equal(dynamo.Point{X: 0.5, Y: -1}))
				for i := 1; i < traj.Len(); i++ {
					Expect(traj.Points[i].X - traj.Points[i-1].X).To(BeNumerically("~", p.H, 1e-12))
				}
				Expect(traj.Method).To(Equal(name))
				Expect(traj.Step).To(Equal(p.H))
			})

			DescribeTable("produces floor((xn-x0)/h + eps) + 1 samples",
				func(x0, xn, h float64) {
					p := dynamo.Problem{X0: x0, Xn: xn, Y0: 1, H: h}
					traj, err := integ.Integrate(dynamo.Func(func(x, y float64) float64 { return 1 }), p)
					Expect(err).NotTo(HaveOccurred())
					Expect(traj.Len()).To(Equal(int(math.Floor((xn-x0)/h+dynamo.Epsilon)) + 1))
					Expect(traj.Last().X).To(BeNumerically("<", xn+h))
				},
				Entry("unit interval", 0.0, 1.0, 0.1),
				Entry("lab interval", 1.0, 2.6, 0.1),
				Entry("fine lab interval", 1.0, 2.6, 0.01),
				Entry("quarter steps", 0.0, 2.0, 0.25),
				Entry("empty interval", 3.0, 3.0, 0.1),
			)

			It("never overshoots xn by a full step", func() {
				traj, err := integ.Integrate(dynamo.Func(func(x, y float64) float64 { return 0 }), dynamo.Problem{X0: 0, Xn: 1, Y0: 0, H: 0.3})
				Expect(err).NotTo(HaveOccurred())
				Expect(traj.Len()).To(Equal(5))
				Expect(traj.Last().X).To(BeNumerically("~", 1.2, 1e-12))
			})

			It("stops at a singularity without emitting non-finite samples", func() {
				f := dynamo.Func(func(x, y float64) float64 { return 1 / x })
				traj, err := integ.Integrate(f, dynamo.Problem{X0: -1, Xn: 1, Y0: 0, H: 0.5})
				Expect(err).NotTo(HaveOccurred())

				Expect(traj.Truncated()).To(BeTrue())
				Expect(traj.Last().X).To(BeNumerically("<=", 0))
				for _, pt := range traj.Points {
					Expect(pt.IsValid()).To(BeTrue())
				}
			})

			It("stops on a domain error from math functions", func() {
				f := dynamo.Func(func(x, y float64) float64 { return math.Sqrt(1 - x) })
				traj, err := integ.Integrate(f, dynamo.Problem{X0: 0, Xn: 2, Y0: 0, H: 0.3})
				Expect(err).NotTo(HaveOccurred())
				Expect(traj.Halt).To(MatchError(dynamo.ErrNonFiniteValue))
				Expect(traj.Last().X).To(BeNumerically("<=", 1.2+1e-12))
			})

			It("is idempotent", func() {
				p := dynamo.Problem{X0: 1, Xn: 2.6, Y0: 2, H: 0.1}
				first, err := integ.Integrate(labRHS, p)
				Expect(err).NotTo(HaveOccurred())
				second, err := integ.Integrate(labRHS, p)
				Expect(err).NotTo(HaveOccurred())
				Expect(second.Points).To(Equal(first.Points))
			})

			It("runs the lab problem to completion", func() {
				traj, err := integ.Integrate(labRHS, dynamo.Problem{X0: 1, Xn: 2.6, Y0: 2, H: 0.1})
				Expect(err).NotTo(HaveOccurred())
				Expect(traj.Truncated()).To(BeFalse())
				Expect(traj.Len()).To(Equal(17))
				Expect(traj.Last().X).To(BeNumerically("~", 2.6, 1e-9))
			})
		})
	}

	It("shrinks the Euler/RK4 gap as h decreases", func() {
		gap := func(h float64) float64 {
			p := dynamo.Problem{X0: 1, Xn: 2.6, Y0: 2, H: h}
			eu, err := integrators.NewEuler().Integrate(labRHS, p)
			Expect(err).NotTo(HaveOccurred())
			rk, err := integrators.NewRK4().Integrate(labRHS, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(eu.Len()).To(Equal(rk.Len()))
			return math.Abs(eu.Last().Y - rk.Last().Y)
		}

		coarse, fine := gap(0.1), gap(0.01)
		Expect(fine).To(BeNumerically("<", coarse))
		Expect(coarse).To(BeNumerically("~", 0.3426, 1e-3))
	})

	It("tracks the exact lab solution closely with RK4", func() {
		traj, err := integrators.NewRK4().Integrate(labRHS, dynamo.Problem{X0: 1, Xn: 2.6, Y0: 2, H: 0.01})
		Expect(err).NotTo(HaveOccurred())
		// y^2 = 2 ln x - x^2 + 5
		exact := math.Sqrt(2*math.Log(2.6) - 2.6*2.6 + 5)
		Expect(traj.Last().Y).To(BeNumerically("~", exact, 1e-5))
	})
})
