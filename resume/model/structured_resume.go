package model

// StructuredResume is the record derived from a resume's plain text.
// Identity fields are nil when no line qualified; list fields are never nil.
type StructuredResume struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Projects   []string `json:"projects"`
}

// Empty returns a StructuredResume with no identity and empty sections.
func Empty() StructuredResume {
	return StructuredResume{
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
		Projects:   []string{},
	}
}

// Section names a bucket a resume line can be classified into.
type Section string

const (
	SectionNone       Section = ""
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionProjects   Section = "projects"
)
