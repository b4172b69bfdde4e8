package deltav_test

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rcsaid/internal/aggregate"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/vessel"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rcsBlock(isp, thrust float64, dir mgl64.Vec3) *vessel.Thruster {
	return &vessel.Thruster{
		ResourceName: "MonoPropellant",
		Curve:        vessel.ConstantCurve(isp),
		MaxThrust:    thrust,
		Nozzles:      []vessel.Nozzle{{Direction: dir, Throttle: 1}},
	}
}

var _ = Describe("rocket equation", func() {
	It("matches the textbook value", func() {
		dv := deltav.DeltaV(300, 10000, 6000)
		Expect(dv).To(BeNumerically("~", 9.81*300*math.Log(10000.0/6000.0), 1e-9))
		Expect(dv).To(BeNumerically("~", 1503.3, 0.1))
	})

	It("computes burn time from thrust", func() {
		Expect(deltav.BurnTime(4000, 300, 2000)).To(BeNumerically("~", 5886, 1e-9))
	})

	It("treats thrust below the threshold as none", func() {
		Expect(deltav.BurnTime(4000, 300, 0.0005)).To(BeZero())
		Expect(deltav.BurnTime(4000, 300, 0)).To(BeZero())
	})
})

var _ = Describe("FromAggregate", func() {
	It("derives both figures", func() {
		est := deltav.FromAggregate(aggregate.Result{ResourceMass: 4000, Isp: 300, Sane: true}, 10000, 2000)
		Expect(est.DeltaV).To(BeNumerically("~", 9.81*300*math.Log(10000.0/6000.0), 1e-9))
		Expect(est.BurnTime).To(BeNumerically("~", 5886, 1e-9))
		Expect(est.Sane).To(BeTrue())
		Expect(est.Degenerate).To(BeFalse())
	})

	It("clamps delta-v when propellant is the whole vessel", func() {
		est := deltav.FromAggregate(aggregate.Result{ResourceMass: 10, Isp: 240, Sane: true}, 10, 1)
		Expect(est.Degenerate).To(BeTrue())
		Expect(est.DeltaV).To(BeZero())
		Expect(math.IsInf(est.DeltaV, 0) || math.IsNaN(est.DeltaV)).To(BeFalse())
		Expect(est.BurnTime).To(BeNumerically("~", 10*9.81*240, 1e-9))
	})

	It("clamps delta-v when propellant exceeds the vessel mass", func() {
		est := deltav.FromAggregate(aggregate.Result{ResourceMass: 12, Isp: 240}, 10, 0)
		Expect(est.Degenerate).To(BeTrue())
		Expect(est.DeltaV).To(BeZero())
		Expect(est.BurnTime).To(BeZero())
	})

	It("is degenerate for a massless vessel", func() {
		est := deltav.FromAggregate(aggregate.Result{Sane: true}, 0, 0)
		Expect(est.Degenerate).To(BeTrue())
		Expect(est.DeltaV).To(BeZero())
	})
})

var _ = Describe("Compute", func() {
	var resources *vessel.Resources

	BeforeEach(func() {
		resources = vessel.NewResources(
			vessel.Resource{Name: "MonoPropellant", Mass: 0.4, Flow: vessel.FlowAllVessel},
		)
	})

	It("is zero and sane with no contributors", func() {
		est := deltav.Compute(deltav.ModeRCS, vessel.NewSnapshot(nil, 2, resources))
		Expect(est.DeltaV).To(BeZero())
		Expect(est.BurnTime).To(BeZero())
		Expect(est.Isp).To(BeZero())
		Expect(est.ResourceMass).To(BeZero())
		Expect(est.Sane).To(BeTrue())
	})

	It("estimates a pair of shared-tank thrusters", func() {
		cs := []vessel.Contributor{
			rcsBlock(240, 1, mgl64.Vec3{0, 0, 1}),
			rcsBlock(240, 1, mgl64.Vec3{0, 0, 1}),
		}
		est := deltav.Compute(deltav.ModeRCS, vessel.NewSnapshot(cs, 2, resources))

		Expect(est.ResourceMass).To(Equal(0.4))
		Expect(est.Isp).To(BeNumerically("~", 240, 1e-9))
		Expect(est.Thrust).To(BeNumerically("~", 2, 1e-12))
		Expect(est.DeltaV).To(BeNumerically("~", 9.81*240*math.Log(2/1.6), 1e-9))
		Expect(est.BurnTime).To(BeNumerically("~", 0.4*9.81*240/2, 1e-9))
	})

	DescribeTable("non-aggregating modes publish the zero estimate",
		func(mode deltav.Mode) {
			cs := []vessel.Contributor{rcsBlock(240, 1, mgl64.Vec3{0, 0, 1})}
			est := deltav.Compute(mode, vessel.NewSnapshot(cs, 2, resources))
			Expect(est).To(Equal(deltav.Estimate{Mode: mode, Sane: true}))
		},
		Entry("attitude", deltav.ModeAttitude),
		Entry("engine", deltav.ModeEngine),
		Entry("out of range", deltav.Mode(42)),
	)
})

var _ = Describe("Mode", func() {
	It("maps every mode to a strategy", func() {
		for _, m := range deltav.Modes() {
			Expect(deltav.StrategyFor(m)).NotTo(BeNil())
		}
		Expect(deltav.StrategyFor(deltav.Mode(-1))).NotTo(BeNil())
	})

	It("round trips through its name", func() {
		for _, m := range deltav.Modes() {
			parsed, err := deltav.ParseMode(m.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(m))
		}
		_, err := deltav.ParseMode("warp")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Estimator", func() {
	var (
		est       *deltav.Estimator
		resources *vessel.Resources
		snap      vessel.Snapshot
	)

	BeforeEach(func() {
		est = deltav.NewEstimator(deltav.ModeRCS, quietLogger())
		resources = vessel.NewResources(
			vessel.Resource{Name: "MonoPropellant", Mass: 0.4, Flow: vessel.FlowAllVessel},
		)
		cs := []vessel.Contributor{rcsBlock(240, 1, mgl64.Vec3{0, 0, 1})}
		snap = vessel.NewSnapshot(cs, 2, resources)
	})

	It("starts with the zero estimate", func() {
		Expect(est.Latest()).To(Equal(deltav.Estimate{Mode: deltav.ModeRCS, Sane: true}))
	})

	It("publishes what Update returns", func() {
		got := est.Update(snap)
		Expect(est.Latest()).To(Equal(got))
		Expect(got.DeltaV).To(BeNumerically(">", 0))
	})

	It("resets to zero when switched to another mode", func() {
		est.Update(snap)
		est.SetMode(deltav.ModeAttitude)
		got := est.Update(snap)
		Expect(got.DeltaV).To(BeZero())
		Expect(got.BurnTime).To(BeZero())
		Expect(est.Latest().Mode).To(Equal(deltav.ModeAttitude))
	})

	It("keeps the previous estimate while disabled", func() {
		first := est.Update(snap)
		est.SetEnabled(false)

		empty := vessel.NewSnapshot(nil, 2, resources)
		Expect(est.Update(empty)).To(Equal(first))
		Expect(est.Latest()).To(Equal(first))

		est.SetEnabled(true)
		Expect(est.Update(empty).DeltaV).To(BeZero())
	})

	It("reports insane pooling without failing", func() {
		resources.Set(vessel.Resource{Name: "MonoPropellant", Mass: 0.4, Flow: vessel.FlowNoFlow})
		got := est.Update(snap)
		Expect(got.Sane).To(BeFalse())
		Expect(got.DeltaV).To(BeNumerically(">", 0))
	})

	It("logs entering and leaving the degenerate state once each", func() {
		var buf bytes.Buffer
		est = deltav.NewEstimator(deltav.ModeRCS, slog.New(slog.NewTextHandler(&buf, nil)))
		cs := []vessel.Contributor{rcsBlock(240, 1, mgl64.Vec3{0, 0, 1})}
		light := vessel.NewSnapshot(cs, 0.3, resources)

		Expect(est.Update(light).Degenerate).To(BeTrue())
		Expect(est.Update(light).Degenerate).To(BeTrue())
		Expect(est.Update(snap).Degenerate).To(BeFalse())
		Expect(est.Update(snap).Degenerate).To(BeFalse())

		Expect(bytes.Count(buf.Bytes(), []byte("delta-v clamped to zero"))).To(Equal(1))
		Expect(bytes.Count(buf.Bytes(), []byte("vessel mass above propellant mass again"))).To(Equal(1))
	})

	It("never exposes a half-written estimate", func() {
		empty := vessel.NewSnapshot(nil, 2, resources)
		full := est.Update(snap)
		zero := est.Update(empty)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if i%2 == 0 {
					est.Update(snap)
				} else {
					est.Update(empty)
				}
			}
		}()

		for i := 0; i < 2000; i++ {
			got := est.Latest()
			Expect(got == full || got == zero).To(BeTrue())
		}
		wg.Wait()
	})
})
