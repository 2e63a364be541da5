package llm

import (
	_ "embed"
	"strconv"
	"strings"
)

var (
	//go:embed prompts/summarize.txt
	promptSummarize string
	//go:embed prompts/analyze.txt
	promptAnalyze string
	//go:embed prompts/fix_json.txt
	promptFixJSON string
	//go:embed prompts/chat_system.txt
	promptChatSystem string
)

// SummarizePrompt renders the prose summary prompt for a resume.
func SummarizePrompt(resumeText string) string {
	return render(promptSummarize, map[string]string{
		"{{RESUME_TEXT}}": resumeText,
	})
}

// AnalyzePrompt renders the structured analysis prompt.
func AnalyzePrompt(resumeText, summary string) string {
	return render(promptAnalyze, map[string]string{
		"{{RESUME_TEXT}}": resumeText,
		"{{SUMMARY}}":     summary,
	})
}

// FixJSONPrompt asks the model to repair a malformed analysis payload.
func FixJSONPrompt(raw string) string {
	return render(promptFixJSON, map[string]string{
		"{{RAW_OUTPUT}}": raw,
	})
}

// ChatSystemPrompt grounds the advisor conversation on a stored analysis.
type ChatSystemPrompt struct {
	Summary         string
	Strengths       []string
	Weaknesses      []string
	ImprovementTips []string
	SuggestedRoles  []string
	ATSScore        int
}

// Render fills the chat system template.
func (p ChatSystemPrompt) Render() string {
	return render(promptChatSystem, map[string]string{
		"{{SUMMARY}}":          p.Summary,
		"{{STRENGTHS}}":        bulletList(p.Strengths),
		"{{WEAKNESSES}}":       bulletList(p.Weaknesses),
		"{{IMPROVEMENT_TIPS}}": bulletList(p.ImprovementTips),
		"{{SUGGESTED_ROLES}}":  bulletList(p.SuggestedRoles),
		"{{ATS_SCORE}}":        strconv.Itoa(p.ATSScore),
	})
}

func render(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, k, v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- (none)"
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}
