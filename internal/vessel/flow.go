package vessel

import (
	"fmt"
	"strings"
)

// FlowMode is how a resource may be drawn across the vessel.
type FlowMode int

const (
	FlowUnknown FlowMode = iota
	FlowAllVessel
	FlowStagePriority
	FlowStackPriority
	FlowNoFlow
)

var flowNames = map[FlowMode]string{
	FlowUnknown:       "unknown",
	FlowAllVessel:     "all_vessel",
	FlowStagePriority: "stage_priority",
	FlowStackPriority: "stack_priority",
	FlowNoFlow:        "no_flow",
}

func (f FlowMode) String() string {
	if name, ok := flowNames[f]; ok {
		return name
	}
	return fmt.Sprintf("flow(%d)", int(f))
}

// Poolable reports whether every tank on the vessel feeds every consumer, which
// is what the delta-v estimate assumes.
func (f FlowMode) Poolable() bool {
	return f == FlowAllVessel || f == FlowStagePriority
}

func ParseFlowMode(s string) (FlowMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for mode, name := range flowNames {
		if name == key {
			return mode, nil
		}
	}
	return FlowUnknown, fmt.Errorf("unknown flow mode: %q", s)
}
