package chat

import (
	"fmt"
	"strings"

	"repolens/internal/ingest"
)

// SystemPrompt renders a snapshot into the grounding context for the model:
// repository metadata first, then config/doc files, then the prioritized
// code files with their (already truncated) content.
func SystemPrompt(snap *ingest.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a code assistant answering questions about the GitHub repository %s.\n", snap.Info.FullName)
	b.WriteString("Base every answer on the repository context below. When the context is insufficient, say so instead of guessing.\n\n")

	b.WriteString("## Repository\n")
	fmt.Fprintf(&b, "Name: %s\n", snap.Info.Name)
	if snap.Info.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", snap.Info.Description)
	}
	if snap.Info.Language != "" {
		fmt.Fprintf(&b, "Primary language: %s\n", snap.Info.Language)
	}
	fmt.Fprintf(&b, "Stars: %d, Forks: %d\n", snap.Info.Stars, snap.Info.Forks)
	if len(snap.Info.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(snap.Info.Topics, ", "))
	}
	if snap.Info.Homepage != "" {
		fmt.Fprintf(&b, "Homepage: %s\n", snap.Info.Homepage)
	}
	fmt.Fprintf(&b, "Files in context: %d of %d discovered\n", len(snap.CodeFiles)+len(snap.ImportantFiles), snap.TotalFiles)

	if len(snap.ImportantFiles) > 0 {
		b.WriteString("\n## Project configuration\n")
		for _, f := range snap.ImportantFiles {
			content := f.Content
			if strings.HasSuffix(strings.ToLower(f.Name), ".md") {
				content = cleanMarkdown(content)
			}
			fmt.Fprintf(&b, "\n### %s\n```\n%s\n```\n", f.Path, content)
		}
	}

	if len(snap.CodeFiles) > 0 {
		b.WriteString("\n## Source files\n")
		for _, f := range snap.CodeFiles {
			fmt.Fprintf(&b, "\n### %s (%s)\n```\n%s\n```\n", f.Path, f.Language, f.Content)
		}
	}

	return b.String()
}
