package material

import (
	"fmt"
	"sort"

	"CraneView/internal/crane/geometry"
)

// Preset is a catalogue pipe grade for the 48.6 mm scaffold tube.
type Preset struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	TWall       float64 `json:"t_wall"`
	YieldStress float64 `json:"yield_stress"`
}

const Default = "STK400"

var presets = map[string]Preset{
	"STK400":        {Name: "STK400", Label: "STK400 (standard, t=2.4mm, σy=235)", TWall: 2.4, YieldStress: 235.0},
	"STK500":        {Name: "STK500", Label: "STK500 (high tensile, t=2.4mm, σy=355)", TWall: 2.4, YieldStress: 355.0},
	"SuperLight700": {Name: "SuperLight700", Label: "SuperLight700 (light, t=1.8mm, σy=700)", TWall: 1.8, YieldStress: 700.0},
}

func Lookup(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown pipe type %q", name)
	}
	return p, nil
}

// All returns the presets ordered by yield stress.
func All() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YieldStress < out[j].YieldStress })
	return out
}

// Apply returns params with the preset's wall thickness and yield stress.
func (p Preset) Apply(params geometry.ParameterSet) geometry.ParameterSet {
	params.TWall = p.TWall
	params.YieldStress = p.YieldStress
	return params
}
