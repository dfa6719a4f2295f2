package place

// Spring is an attraction constraint between a named pin on one component
// and a named pin on another, usually derived from a shared electrical net.
//
// Endpoints are referenced by (component ref, pin number) strings rather
// than pointers and are resolved fresh at every force computation, so a
// spring stays valid even if its components are replaced between runs. A
// dangling reference is not an error: it contributes zero force.
type Spring struct {
	Comp1Ref   string  `json:"comp1_ref"`
	Pin1Num    string  `json:"pin1_num"`
	Comp2Ref   string  `json:"comp2_ref"`
	Pin2Num    string  `json:"pin2_num"`
	Stiffness  float64 `json:"stiffness"`
	RestLength float64 `json:"rest_length"`
	Net        int     `json:"net,omitempty"`
	NetName    string  `json:"net_name,omitempty"`
}

// NewSpring creates a spring between two pins with default stiffness 1.0 and
// rest length 0.
func NewSpring(comp1Ref, pin1Num, comp2Ref, pin2Num string) Spring {
	return Spring{
		Comp1Ref:  comp1Ref,
		Pin1Num:   pin1Num,
		Comp2Ref:  comp2Ref,
		Pin2Num:   pin2Num,
		Stiffness: 1.0,
	}
}
