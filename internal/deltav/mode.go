package deltav

import (
	"fmt"
	"strings"

	"github.com/san-kum/rcsaid/internal/aggregate"
	"github.com/san-kum/rcsaid/internal/vessel"
)

type Mode int

const (
	ModeRCS Mode = iota
	ModeAttitude
	ModeEngine
)

var modeNames = []string{
	ModeRCS:      "rcs",
	ModeAttitude: "attitude",
	ModeEngine:   "engine",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == key {
			return Mode(i), nil
		}
	}
	return ModeRCS, fmt.Errorf("unknown mode: %q", s)
}

func Modes() []Mode {
	ms := make([]Mode, len(modeNames))
	for i := range modeNames {
		ms[i] = Mode(i)
	}
	return ms
}

// Strategy aggregates a snapshot for one mode. ok is false when the mode does
// not estimate delta-v at all.
type Strategy interface {
	Aggregate(snap vessel.Snapshot) (res aggregate.Result, ok bool)
}

type rcsStrategy struct{}

func (rcsStrategy) Aggregate(snap vessel.Snapshot) (aggregate.Result, bool) {
	return aggregate.Run(snap), true
}

type zeroStrategy struct{}

func (zeroStrategy) Aggregate(vessel.Snapshot) (aggregate.Result, bool) {
	return aggregate.Result{Sane: true}, false
}

var strategies = map[Mode]Strategy{
	ModeRCS:      rcsStrategy{},
	ModeAttitude: zeroStrategy{},
	ModeEngine:   zeroStrategy{},
}

// StrategyFor never returns nil; modes outside the table get the zero
// strategy.
func StrategyFor(m Mode) Strategy {
	if s, ok := strategies[m]; ok {
		return s
	}
	return zeroStrategy{}
}
