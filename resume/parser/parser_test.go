package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseTextEmptyDocument(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n \t\n"} {
		got := ParseText(text)
		if got.Name != nil || got.Email != nil || got.Phone != nil {
			t.Fatalf("expected no identity fields for %q, got %+v", text, got)
		}
		if len(got.Skills) != 0 || len(got.Experience) != 0 || len(got.Education) != 0 || len(got.Projects) != 0 {
			t.Fatalf("expected empty sections for %q, got %+v", text, got)
		}
		if got.Skills == nil || got.Experience == nil || got.Education == nil || got.Projects == nil {
			t.Fatalf("expected non-nil section slices for %q", text)
		}
	}
}

func TestParseTextEndToEnd(t *testing.T) {
	text := "Jane Doe\njane@example.com\n+14155550123\nSkills\nPython, SQL\nExperience\nBackend Engineer at Foo\nEducation\nBS CS\nProjects\nResume Parser — a tool"

	got := ParseText(text)

	assertPtr(t, "name", got.Name, "Jane Doe")
	assertPtr(t, "email", got.Email, "jane@example.com")
	assertPtr(t, "phone", got.Phone, "+14155550123")
	for _, want := range []string{"Python", "SQL"} {
		if !contains(got.Skills, want) {
			t.Fatalf("expected skills to include %q, got %v", want, got.Skills)
		}
	}
	assertSlice(t, "experience", got.Experience, []string{"Backend Engineer at Foo"})
	assertSlice(t, "education", got.Education, []string{"BS CS"})
	assertSlice(t, "projects", got.Projects, []string{"Resume Parser"})
}

func TestExtractIdentityFirstEmailWins(t *testing.T) {
	lines := []string{"John Smith", "Contact: john@a.com", "backup: other@b.com"}
	got := ExtractIdentity(lines)
	assertPtr(t, "email", got.Email, "Contact: john@a.com")
	assertPtr(t, "name", got.Name, "John Smith")
}

func TestExtractIdentitySameLineMultipleFields(t *testing.T) {
	lines := []string{"jane@example.com 4155550123"}
	got := ExtractIdentity(lines)
	assertPtr(t, "name", got.Name, lines[0])
	assertPtr(t, "email", got.Email, lines[0])
	assertPtr(t, "phone", got.Phone, lines[0])
}

func TestIsPhoneLineBoundaries(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "9 digits", line: "123456789", want: false},
		{name: "10 digits", line: "1234567890", want: true},
		{name: "13 digits", line: "1234567890123", want: true},
		{name: "14 digits", line: "12345678901234", want: false},
		{name: "plus prefix", line: "+14155550123", want: true},
		{name: "embedded in text", line: "Phone: 4155550123 (mobile)", want: true},
		{name: "separated digits", line: "415-555-0123", want: false},
		{name: "no digits", line: "Jane Doe", want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPhoneLine(tt.line); got != tt.want {
				t.Fatalf("IsPhoneLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyDiscardsHeaderLines(t *testing.T) {
	got := Classify([]string{"Skills", "Python, Go, C++", "Experience", "Engineer at Acme"})
	assertSlice(t, "skills", got.Skills, []string{"Python, Go, C++"})
	assertSlice(t, "experience", got.Experience, []string{"Engineer at Acme"})
	if len(got.Education) != 0 || len(got.Projects) != 0 {
		t.Fatalf("unexpected content: %+v", got)
	}
}

func TestClassifyDropsPreamble(t *testing.T) {
	got := Classify([]string{"Jane Doe", "Objective: build things", "Education", "BS CS"})
	assertSlice(t, "education", got.Education, []string{"BS CS"})
	if len(got.Skills) != 0 || len(got.Experience) != 0 || len(got.Projects) != 0 {
		t.Fatalf("expected preamble to be dropped, got %+v", got)
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	got := Classify([]string{"Project management skills", "Planning"})
	assertSlice(t, "skills", got.Skills, []string{"Planning"})
	if len(got.Projects) != 0 {
		t.Fatalf("expected skill trigger to win over project, got %+v", got.Projects)
	}
}

func TestClassifyEducationCapIsCumulative(t *testing.T) {
	lines := []string{
		"Education", "E1", "E2", "E3", "E4",
		"Skills", "Go",
		"Education", "E5",
	}
	got := Classify(lines)
	assertSlice(t, "education", got.Education, []string{"E1", "E2", "E3"})
}

func TestClassifyProjectsCapAndTruncation(t *testing.T) {
	lines := []string{
		"Projects",
		"Alpha — first",
		"Beta – second",
		"Gamma",
		"Delta — x — y",
		"Epsilon",
		"Zeta",
	}
	got := Classify(lines)
	assertSlice(t, "projects", got.Projects, []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"})
}

func TestAssembleSkillsLengthFilterAndDedup(t *testing.T) {
	sections := Sections{Skills: []string{
		"Python, A-very-long-skill-name-that-exceeds-thirty-characters",
		"Python , Go,, ",
	}}
	got := DefaultPolicy().Assemble(Identity{}, sections)
	assertSlice(t, "skills", got.Skills, []string{"Python", "Go"})
}

func TestParseTextSkillsTrailingCommaYieldsNoEmptySkill(t *testing.T) {
	got := ParseText("Jane Doe\nSkills\nPython, Go,")
	assertSlice(t, "skills", got.Skills, []string{"Python", "Go"})
}

func TestAssembleSkillsCappedAtTen(t *testing.T) {
	var parts []string
	for i := 0; i < 15; i++ {
		parts = append(parts, strings.Repeat("s", i+1))
	}
	got := DefaultPolicy().Assemble(Identity{}, Sections{Skills: []string{strings.Join(parts, ",")}})
	if len(got.Skills) != DefaultMaxSkills {
		t.Fatalf("expected %d skills, got %d", DefaultMaxSkills, len(got.Skills))
	}
}

func TestParseTextDeterministic(t *testing.T) {
	text := "Name\nSkills\nGo, Rust, Python, SQL, Docker, Kubernetes, AWS, GCP, Kafka, Redis, Postgres"
	first := ParseText(text)
	for i := 0; i < 20; i++ {
		if got := ParseText(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("parse is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestReclassifyRoundTrip(t *testing.T) {
	text := "Jane\nSkills\nGo, SQL\nExperience\nA\nB\nC\nD\nEducation\nBS\nProjects\nP1 — desc\nP2"
	first := ParseText(text)

	again := func(header string, lines []string) Sections {
		return Classify(append([]string{header}, lines...))
	}
	if got := again("Experience", first.Experience).Experience; !reflect.DeepEqual(got, first.Experience) {
		t.Fatalf("experience round trip: %v vs %v", got, first.Experience)
	}
	if got := again("Education", first.Education).Education; !reflect.DeepEqual(got, first.Education) {
		t.Fatalf("education round trip: %v vs %v", got, first.Education)
	}
	if got := again("Projects", first.Projects).Projects; !reflect.DeepEqual(got, first.Projects) {
		t.Fatalf("projects round trip: %v vs %v", got, first.Projects)
	}
	skills := DefaultPolicy().Assemble(Identity{}, again("Skills", first.Skills)).Skills
	if !reflect.DeepEqual(skills, first.Skills) {
		t.Fatalf("skills round trip: %v vs %v", skills, first.Skills)
	}
}

func TestPolicyOverridesCaps(t *testing.T) {
	p := DefaultPolicy()
	p.MaxExperience = 1
	got := p.ParseText("X\nExperience\nA\nB")
	assertSlice(t, "experience", got.Experience, []string{"A"})
}

func assertPtr(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %s %q, got nil", field, want)
	}
	if *got != want {
		t.Fatalf("expected %s %q, got %q", field, want, *got)
	}
}

func assertSlice(t *testing.T, field string, got, want []string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %s %v, got %v", field, want, got)
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
