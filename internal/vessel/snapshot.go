package vessel

import "github.com/go-gl/mathgl/mgl64"

// Snapshot is everything one aggregation pass reads. It is only valid for the
// tick it was taken in.
type Snapshot struct {
	Contributors []Contributor
	NetThrust    mgl64.Vec3
	Mass         float64
	Masses       MassLookup
	Flows        FlowLookup
}

// NewSnapshot fills NetThrust from the contributors.
func NewSnapshot(cs []Contributor, mass float64, resources *Resources) Snapshot {
	return Snapshot{
		Contributors: cs,
		NetThrust:    NetThrust(cs),
		Mass:         mass,
		Masses:       resources,
		Flows:        resources,
	}
}
