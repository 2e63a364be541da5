package parser

const (
	// DefaultMaxExperience caps experience lines across the whole document.
	DefaultMaxExperience = 3
	// DefaultMaxEducation caps education lines across the whole document.
	DefaultMaxEducation = 3
	// DefaultMaxProjects caps project lines across the whole document.
	DefaultMaxProjects = 5
	// DefaultMaxSkills caps the deduplicated skills list.
	DefaultMaxSkills = 10
	// DefaultMaxSkillLength is the exclusive upper bound, in runes, of a kept skill fragment.
	DefaultMaxSkillLength = 30
)

// Policy holds the truncation limits applied while parsing.
type Policy struct {
	MaxExperience  int
	MaxEducation   int
	MaxProjects    int
	MaxSkills      int
	MaxSkillLength int
	// ProjectSeparators end the kept part of a project line at their first occurrence.
	ProjectSeparators []string
}

// DefaultPolicy returns the limits used by ParseText.
func DefaultPolicy() Policy {
	return Policy{
		MaxExperience:     DefaultMaxExperience,
		MaxEducation:      DefaultMaxEducation,
		MaxProjects:       DefaultMaxProjects,
		MaxSkills:         DefaultMaxSkills,
		MaxSkillLength:    DefaultMaxSkillLength,
		ProjectSeparators: []string{"—", "–"},
	}
}
