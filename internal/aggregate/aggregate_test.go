package aggregate_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rcsaid/internal/aggregate"
	"github.com/san-kum/rcsaid/internal/vessel"
)

type stubContributor struct {
	enabled  bool
	resource string
	isp      float64
	vectors  []mgl64.Vec3
}

func (s stubContributor) Enabled() bool               { return s.enabled }
func (s stubContributor) Resource() string            { return s.resource }
func (s stubContributor) ThrustVectors() []mgl64.Vec3 { return s.vectors }
func (s stubContributor) IspCurve() vessel.Curve {
	return vessel.CurveFunc(func(p float64) float64 {
		if p != 0 {
			return 0
		}
		return s.isp
	})
}

var _ = Describe("ResourceMass", func() {
	var resources *vessel.Resources

	BeforeEach(func() {
		resources = vessel.NewResources(
			vessel.Resource{Name: "MonoPropellant", Mass: 0.75, Flow: vessel.FlowAllVessel},
			vessel.Resource{Name: "LiquidFuel", Mass: 2, Flow: vessel.FlowStagePriority},
			vessel.Resource{Name: "SolidFuel", Mass: 5, Flow: vessel.FlowNoFlow},
		)
	})

	It("is zero and sane with no contributors", func() {
		mass, sane := aggregate.ResourceMass(nil, resources, resources)
		Expect(mass).To(BeZero())
		Expect(sane).To(BeTrue())
	})

	It("counts a shared resource once", func() {
		cs := []vessel.Contributor{
			stubContributor{enabled: true, resource: "MonoPropellant"},
			stubContributor{enabled: true, resource: "MonoPropellant"},
		}
		mass, sane := aggregate.ResourceMass(cs, resources, resources)
		Expect(mass).To(Equal(0.75))
		Expect(sane).To(BeTrue())
	})

	It("counts disabled contributors too", func() {
		cs := []vessel.Contributor{
			stubContributor{enabled: false, resource: "LiquidFuel"},
			stubContributor{enabled: true, resource: "MonoPropellant"},
		}
		mass, _ := aggregate.ResourceMass(cs, resources, resources)
		Expect(mass).To(BeNumerically("~", 2.75, 1e-12))
	})

	It("treats a resource without known mass as zero", func() {
		cs := []vessel.Contributor{
			stubContributor{enabled: true, resource: "Ore"},
			stubContributor{enabled: true, resource: "MonoPropellant"},
		}
		mass, _ := aggregate.ResourceMass(cs, resources, resources)
		Expect(mass).To(Equal(0.75))
	})

	It("is tainted by a single non-poolable resource", func() {
		cs := []vessel.Contributor{
			stubContributor{resource: "MonoPropellant"},
			stubContributor{resource: "LiquidFuel"},
			stubContributor{resource: "SolidFuel"},
		}
		mass, sane := aggregate.ResourceMass(cs, resources, resources)
		Expect(sane).To(BeFalse())
		Expect(mass).To(BeNumerically("~", 7.75, 1e-12))
	})

	It("is not sane when the flow mode is unknown", func() {
		cs := []vessel.Contributor{stubContributor{resource: "Ore"}}
		_, sane := aggregate.ResourceMass(cs, resources, resources)
		Expect(sane).To(BeFalse())
	})
})

var _ = Describe("Isp", func() {
	It("is zero when nothing is enabled", func() {
		cs := []vessel.Contributor{
			stubContributor{enabled: false, isp: 240, vectors: []mgl64.Vec3{{0, 0, 1}}},
		}
		Expect(aggregate.Isp(cs, mgl64.Vec3{0, 0, -1})).To(BeZero())
		Expect(aggregate.Isp(nil, mgl64.Vec3{})).To(BeZero())
	})

	It("is zero when every vector has zero magnitude", func() {
		cs := []vessel.Contributor{
			stubContributor{enabled: true, isp: 240, vectors: []mgl64.Vec3{{}, {}}},
		}
		Expect(aggregate.Isp(cs, mgl64.Vec3{})).To(BeZero())
	})

	It("returns the curve value for a single aligned thruster", func() {
		cs := []vessel.Contributor{
			stubContributor{enabled: true, isp: 240, vectors: []mgl64.Vec3{{0, 0, 1}}},
		}
		net := vessel.NetThrust(cs)
		Expect(aggregate.Isp(cs, net)).To(BeNumerically("~", 240, 1e-9))
	})

	It("weights every thrust vector by its magnitude", func() {
		// 10 along the exhaust axis (v2 = 1), 30 at 60 degrees (v2 = 0.5)
		sixty := math.Pi / 3
		cs := []vessel.Contributor{
			stubContributor{enabled: true, isp: 1, vectors: []mgl64.Vec3{
				{0, 0, 10},
				{30 * math.Sin(sixty), 0, 30 * math.Cos(sixty)},
			}},
		}
		net := mgl64.Vec3{0, 0, -1}
		Expect(aggregate.Isp(cs, net)).To(BeNumerically("~", 0.625, 1e-12))
	})

	It("scales with the curve value", func() {
		sixty := math.Pi / 3
		cs := []vessel.Contributor{
			stubContributor{enabled: true, isp: 280, vectors: []mgl64.Vec3{{0, 0, 10}}},
			stubContributor{enabled: true, isp: 280, vectors: []mgl64.Vec3{{30 * math.Sin(sixty), 0, 30 * math.Cos(sixty)}}},
		}
		Expect(aggregate.Isp(cs, mgl64.Vec3{0, 0, -5})).To(BeNumerically("~", 0.625*280, 1e-9))
	})

	It("skips disabled contributors in the weights", func() {
		cs := []vessel.Contributor{
			stubContributor{enabled: true, isp: 200, vectors: []mgl64.Vec3{{0, 0, 1}}},
			stubContributor{enabled: false, isp: 50, vectors: []mgl64.Vec3{{0, 0, 100}}},
		}
		Expect(aggregate.Isp(cs, mgl64.Vec3{0, 0, -1})).To(BeNumerically("~", 200, 1e-9))
	})
})

var _ = Describe("Run", func() {
	It("is vacuous for an empty snapshot", func() {
		res := aggregate.Run(vessel.NewSnapshot(nil, 10, vessel.NewResources()))
		Expect(res).To(Equal(aggregate.Result{Sane: true}))
	})
})
