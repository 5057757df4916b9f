// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// reportPromptTmpl is the single prompt that carries every paper summary,
// each labeled with an ordinal the model can cite.
var reportPromptTmpl = template.Must(template.New("report").Parse(`You are a professional research analyst. Analyze the following paper summaries and write a research report on their topic.

Paper summaries:
{{.Papers}}

Make the report thorough, clearly structured, and analytical. Reply in {{.Language}}.
When you cite something, state which paper the citation comes from.`))

// BuildPrompt labels each source with an ordinal ("Paper 1: name") and
// renders the analyst prompt around the concatenated summaries.
func BuildPrompt(files []SourceFile, language string) (string, error) {
	var papers strings.Builder
	for i, f := range files {
		fmt.Fprintf(&papers, "\n=== Paper %d: %s ===\n%s\n", i+1, f.Name, f.Content)
	}

	var buf bytes.Buffer
	err := reportPromptTmpl.Execute(&buf, struct{ Papers, Language string }{papers.String(), language})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
