package analyses

// Result is the AI assessment of a resume.
type Result struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	ImprovementTips []string `json:"improvement_tips"`
	SuggestedRoles  []string `json:"suggested_roles"`
	ATSScore        int      `json:"ats_score"`
}

// Clone returns a deep copy so stored results cannot be mutated through
// returned values.
func (r Result) Clone() Result {
	out := r
	out.Strengths = cloneStrings(r.Strengths)
	out.Weaknesses = cloneStrings(r.Weaknesses)
	out.ImprovementTips = cloneStrings(r.ImprovementTips)
	out.SuggestedRoles = cloneStrings(r.SuggestedRoles)
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// analysisPayload is what the analyze step is asked to return.
type analysisPayload struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	ImprovementTips []string `json:"improvement_tips"`
	SuggestedRoles  []string `json:"suggested_roles"`
	ATSScore        *float64 `json:"ats_score"`
}

const (
	minATSScore = 0
	maxATSScore = 100
)
