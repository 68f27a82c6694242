package geometry

// Member ids are the keys of the solver's member_results; keep them in sync.
type Member struct {
	ID string `json:"id"`
	N1 string `json:"n1"`
	N2 string `json:"n2"`
}

var members = [...]Member{
	// base frame
	{"M_base_FL_FR", FL, FR},
	{"M_base_FR_RR", FR, RR},
	{"M_base_RR_RL", RR, RL},
	{"M_base_RL_FL", RL, FL},
	// base cross
	{"M_base_Fmid_Rmid", Fmid, Rmid},
	{"M_base_Lmid_RmidX0", Lmid, RmidX0},
	// mast, split at the brace and tripod joints
	{"M_mast_1", Lmid, MBrace},
	{"M_mast_2", MBrace, MAttach},
	{"M_mast_3", MAttach, MTop},
	// tripod legs
	{"M_tripod_FL", MAttach, FL},
	{"M_tripod_RL", MAttach, RL},
	{"M_arm", MTop, ATip},
	{"M_brace", MBrace, ABrace},
}

// Members returns a copy of the fixed member table in order.
func Members() []Member {
	out := make([]Member, len(members))
	copy(out, members[:])
	return out
}

// MemberByID looks up a member of the fixed table.
func MemberByID(id string) (Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Endpoints resolves a member against a node set.
func (m Member) Endpoints(nodes NodeSet) (Point, Point, bool) {
	p1, ok1 := nodes[m.N1]
	p2, ok2 := nodes[m.N2]
	return p1, p2, ok1 && ok2
}
