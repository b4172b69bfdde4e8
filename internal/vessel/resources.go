package vessel

import "sort"

// MassLookup answers the current mass of a resource across the vessel.
type MassLookup interface {
	Mass(resource string) (float64, bool)
}

// FlowLookup answers the flow mode of a resource definition.
type FlowLookup interface {
	FlowMode(resource string) FlowMode
}

type Resource struct {
	Name string
	Mass float64
	Flow FlowMode
}

// Resources is a table of the resources carried by a vessel. It serves both
// lookups. A resource missing from the table has no mass and FlowUnknown.
type Resources struct {
	entries map[string]*Resource
}

func NewResources(rs ...Resource) *Resources {
	t := &Resources{entries: make(map[string]*Resource, len(rs))}
	for _, r := range rs {
		t.Set(r)
	}
	return t
}

func (t *Resources) Set(r Resource) {
	if r.Mass < 0 {
		r.Mass = 0
	}
	rc := r
	t.entries[r.Name] = &rc
}

func (t *Resources) Mass(name string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	r, ok := t.entries[name]
	if !ok {
		return 0, false
	}
	return r.Mass, true
}

func (t *Resources) FlowMode(name string) FlowMode {
	if t == nil {
		return FlowUnknown
	}
	r, ok := t.entries[name]
	if !ok {
		return FlowUnknown
	}
	return r.Flow
}

// Draw removes up to amount of mass from a resource and returns what was
// actually taken.
func (t *Resources) Draw(name string, amount float64) float64 {
	r, ok := t.entries[name]
	if !ok || amount <= 0 {
		return 0
	}
	if amount > r.Mass {
		amount = r.Mass
	}
	r.Mass -= amount
	return amount
}

// Total is the summed mass of every resource in the table.
func (t *Resources) Total() float64 {
	total := 0.0
	for _, r := range t.entries {
		total += r.Mass
	}
	return total
}

func (t *Resources) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Resources) Clone() *Resources {
	c := &Resources{entries: make(map[string]*Resource, len(t.entries))}
	for name, r := range t.entries {
		rc := *r
		c.entries[name] = &rc
	}
	return c
}
