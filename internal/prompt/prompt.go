// Package prompt assembles the single user message sent to the remote model.
package prompt

import "strings"

// Build joins every note title with the note currently open in the editor and
// the user's question.
func Build(titles []string, currentTitle, currentContent, question string) string {
	var b strings.Builder

	b.WriteString("Titles of all notes:\n")
	b.WriteString(strings.Join(titles, "\n"))
	b.WriteString("\n\n")
	b.WriteString("Current note title: ")
	b.WriteString(currentTitle)
	b.WriteString("\n")
	b.WriteString("Current note content: ")
	b.WriteString(currentContent)
	b.WriteString("\n\n")
	b.WriteString("User's question: ")
	b.WriteString(question)

	return b.String()
}
