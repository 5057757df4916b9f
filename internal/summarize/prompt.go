// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"text/template"
)

// summaryPromptTmpl is the prompt sent to the chat API for each paper. The
// embedded text has already been cut to the prompt budget.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are a helpful assistant. Context information is below.

Please tell me the title of the article, the institution(s) of the authors, and the publish year of the article.

Then, using the provided context information, write a comprehensive summary of the article. Use prior knowledge only if the given context did not provide enough information. In particular, note the problems or difficulties this work deals with, and how it solves them.

Reply in {{.Language}}. For key terms or specialized nouns, provide the original term in parentheses.

Context:
{{.Text}}`))

// renderPrompt executes the summary template with the truncated text.
func renderPrompt(text, language string) (string, error) {
	var buf bytes.Buffer
	err := summaryPromptTmpl.Execute(&buf, struct{ Text, Language string }{text, language})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
