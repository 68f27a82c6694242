package geometry

// ParameterSet lengths are mm, arm_angle is degrees, mass_tip kg, yield_stress N/mm².
// Values are used as given, nothing is clamped here.
type ParameterSet struct {
	PipeOD             float64 `json:"pipe_od"`
	TWall              float64 `json:"t_wall"`
	BaseLen            float64 `json:"base_len"`
	BaseWid            float64 `json:"base_wid"`
	ArmPivotHeight     float64 `json:"arm_pivot_height"`
	TripodAttachHeight float64 `json:"tripod_attach_height"`
	BraceMastHeight    float64 `json:"brace_mast_height"`
	ArmLen             float64 `json:"arm_len"`
	ArmAngle           float64 `json:"arm_angle"`
	MassTip            float64 `json:"mass_tip"`
	YieldStress        float64 `json:"yield_stress"`
}

// Defaults is the STK400 48.6x2.4 crane the viewer opens with.
func Defaults() ParameterSet {
	return ParameterSet{
		PipeOD:             48.6,
		TWall:              2.4,
		BaseLen:            900.0,
		BaseWid:            600.0,
		ArmPivotHeight:     1800.0,
		TripodAttachHeight: 1000.0,
		BraceMastHeight:    800.0,
		ArmLen:             1000.0,
		ArmAngle:           180.0,
		MassTip:            50.0,
		YieldStress:        235.0,
	}
}

// Fields returns the parameters in wire order, keyed by their JSON names.
func (p ParameterSet) Fields() []Field {
	return []Field{
		{"pipe_od", p.PipeOD},
		{"t_wall", p.TWall},
		{"base_len", p.BaseLen},
		{"base_wid", p.BaseWid},
		{"arm_pivot_height", p.ArmPivotHeight},
		{"tripod_attach_height", p.TripodAttachHeight},
		{"brace_mast_height", p.BraceMastHeight},
		{"arm_len", p.ArmLen},
		{"arm_angle", p.ArmAngle},
		{"mass_tip", p.MassTip},
		{"yield_stress", p.YieldStress},
	}
}

type Field struct {
	Name  string
	Value float64
}

// Set assigns a parameter by JSON name. It reports false for unknown names.
func (p *ParameterSet) Set(name string, v float64) bool {
	switch name {
	case "pipe_od":
		p.PipeOD = v
	case "t_wall":
		p.TWall = v
	case "base_len":
		p.BaseLen = v
	case "base_wid":
		p.BaseWid = v
	case "arm_pivot_height":
		p.ArmPivotHeight = v
	case "tripod_attach_height":
		p.TripodAttachHeight = v
	case "brace_mast_height":
		p.BraceMastHeight = v
	case "arm_len":
		p.ArmLen = v
	case "arm_angle":
		p.ArmAngle = v
	case "mass_tip":
		p.MassTip = v
	case "yield_stress":
		p.YieldStress = v
	default:
		return false
	}
	return true
}
