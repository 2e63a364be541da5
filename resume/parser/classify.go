package parser

import (
	"strings"

	"hirelens/resume/model"
)

// Sections holds the lines assigned to each section. Skills lines are raw;
// the other sections are already capped and transformed.
type Sections struct {
	Skills     []string
	Experience []string
	Education  []string
	Projects   []string
}

type trigger struct {
	keyword string
	section model.Section
}

// Order matters: the first keyword found in a header line wins.
var triggers = []trigger{
	{keyword: "skill", section: model.SectionSkills},
	{keyword: "experience", section: model.SectionExperience},
	{keyword: "education", section: model.SectionEducation},
	{keyword: "project", section: model.SectionProjects},
}

// HeaderSection reports which section a line opens, if it is a header line.
// Keywords match anywhere in the line and the first trigger wins, so
// "Project management skills" opens skills, not projects.
func HeaderSection(line string) (model.Section, bool) {
	lower := strings.ToLower(line)
	for _, t := range triggers {
		if strings.Contains(lower, t.keyword) {
			return t.section, true
		}
	}
	return model.SectionNone, false
}

// Classify assigns lines to sections using the default policy.
func Classify(lines []string) Sections {
	return DefaultPolicy().Classify(lines)
}

// Classify walks lines once, switching section on header lines and appending
// content lines to the active section. Lines before the first header are dropped.
func (p Policy) Classify(lines []string) Sections {
	out := Sections{
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
		Projects:   []string{},
	}
	state := model.SectionNone
	for _, line := range lines {
		if section, ok := HeaderSection(line); ok {
			state = section
			continue
		}
		switch state {
		case model.SectionSkills:
			out.Skills = append(out.Skills, line)
		case model.SectionExperience:
			if len(out.Experience) < p.MaxExperience {
				out.Experience = append(out.Experience, line)
			}
		case model.SectionEducation:
			if len(out.Education) < p.MaxEducation {
				out.Education = append(out.Education, line)
			}
		case model.SectionProjects:
			if len(out.Projects) >= p.MaxProjects {
				continue
			}
			if title := p.projectTitle(line); title != "" {
				out.Projects = append(out.Projects, title)
			}
		}
	}
	return out
}

func (p Policy) projectTitle(line string) string {
	cut := len(line)
	for _, sep := range p.ProjectSeparators {
		if sep == "" {
			continue
		}
		if idx := strings.Index(line, sep); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(line[:cut])
}
