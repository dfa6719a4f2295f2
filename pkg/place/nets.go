package place

import (
	"regexp"
	"sort"
	"strings"
)

// pinRef identifies one pin in the net grouping pass.
type pinRef struct {
	compRef string
	pinNum  string
	netName string
}

// CreateSpringsFromNets derives attraction springs from net membership:
// pins across all components are grouped by net (net 0, "unconnected", is
// excluded) and every net with two or more member pins is connected in a
// star rooted at its first member. Two-pin nets therefore produce exactly
// one spring. Derived springs use the configured spring stiffness and are
// tagged with the net id and name.
//
// The springs are appended to the optimizer's spring set and also returned.
func (o *Optimizer) CreateSpringsFromNets() []Spring {
	byNet := make(map[int][]pinRef)
	for _, c := range o.components {
		for i := range c.Pins {
			p := &c.Pins[i]
			if p.Net == 0 {
				continue
			}
			byNet[p.Net] = append(byNet[p.Net], pinRef{
				compRef: c.Ref,
				pinNum:  p.Number,
				netName: p.NetName,
			})
		}
	}

	nets := make([]int, 0, len(byNet))
	for net := range byNet {
		nets = append(nets, net)
	}
	sort.Ints(nets)

	var created []Spring
	for _, net := range nets {
		members := byNet[net]
		if len(members) < 2 {
			continue
		}
		hub := members[0]
		name := netName(members)
		for _, other := range members[1:] {
			created = append(created, Spring{
				Comp1Ref:  hub.compRef,
				Pin1Num:   hub.pinNum,
				Comp2Ref:  other.compRef,
				Pin2Num:   other.pinNum,
				Stiffness: o.cfg.SpringStiffness,
				Net:       net,
				NetName:   name,
			})
		}
	}

	o.springs = append(o.springs, created...)
	return created
}

// netName picks the name to tag a net's springs with: the first non-empty
// name among the member pins. Boards often name a net on only some of its
// pins, so the hub alone is not authoritative.
func netName(members []pinRef) string {
	for _, m := range members {
		if m.netName != "" {
			return m.netName
		}
	}
	return ""
}

// powerNetRegex matches voltage-rail names like "+5V", "+3V3", and "+12".
var powerNetRegex = regexp.MustCompile(`^\+[0-9]+(\.[0-9]+)?(V[0-9]*)?$`)

// powerNetNames are the common supply and ground net names.
var powerNetNames = map[string]bool{
	"GND":  true,
	"AGND": true,
	"DGND": true,
	"VCC":  true,
	"VDD":  true,
	"VSS":  true,
	"VEE":  true,
}

// IsPowerNet reports whether a net name follows the common power-net naming
// conventions: ground or supply rail names such as GND and VCC, or a leading
// "+" followed by a voltage (e.g. "+3V3", "+5V"). Matching is
// case-insensitive.
func IsPowerNet(name string) bool {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if powerNetNames[upper] {
		return true
	}
	return powerNetRegex.MatchString(upper)
}

// IsClockNet reports whether a net name looks like a clock signal: any name
// containing "CLK" or "CLOCK" (case-insensitive), covering variants like
// MCLK, SCLK, and SPI_CLK.
func IsClockNet(name string) bool {
	upper := strings.ToUpper(name)
	return strings.Contains(upper, "CLK") || strings.Contains(upper, "CLOCK")
}
