package parser

import (
	"strings"
	"unicode/utf8"

	"hirelens/resume/model"
)

// ParseText turns plain resume text into a StructuredResume using the default policy.
func ParseText(text string) model.StructuredResume {
	return DefaultPolicy().ParseText(text)
}

// ParseText turns plain resume text into a StructuredResume.
func (p Policy) ParseText(text string) model.StructuredResume {
	lines := SplitLines(text)
	return p.Assemble(ExtractIdentity(lines), p.Classify(lines))
}

// Assemble combines identity fields and classified sections.
func (p Policy) Assemble(id Identity, sections Sections) model.StructuredResume {
	out := model.Empty()
	out.Name = id.Name
	out.Email = id.Email
	out.Phone = id.Phone
	out.Skills = p.skills(sections.Skills)
	out.Experience = append(out.Experience, sections.Experience...)
	out.Education = append(out.Education, sections.Education...)
	out.Projects = append(out.Projects, sections.Projects...)
	return out
}

// skills splits skills lines on commas, keeps short fragments, and dedups in
// first-seen order before applying the size cap.
func (p Policy) skills(lines []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, line := range lines {
		for _, fragment := range strings.Split(line, ",") {
			skill := strings.TrimSpace(fragment)
			if skill == "" || utf8.RuneCountInString(skill) >= p.MaxSkillLength {
				continue
			}
			if _, dup := seen[skill]; dup {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
			if p.MaxSkills > 0 && len(out) == p.MaxSkills {
				return out
			}
		}
	}
	return out
}
