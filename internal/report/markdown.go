package report

import (
	"fmt"
	"os"

	"github.com/nao1215/markdown"
)

// writeMarkdown renders the Markdown rendition of the report.
// Structure mirrors the HTML document: a top-level heading naming the
// domain, then one section per artifact with its raw text in a code
// block.
func writeMarkdown(path, domain string, sections []SectionContent) error {
	f, err := os.Create(path) //nolint:gosec // Path is derived from the run's output directory
	if err != nil {
		return fmt.Errorf("failed to create Markdown report %s: %w", path, err)
	}
	defer f.Close()

	md := markdown.NewMarkdown(f)
	md.H1("Reconocimiento para " + domain)
	md.PlainText("")

	for _, s := range sections {
		md.H2(s.Name)
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightText, s.Content)
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to write Markdown report %s: %w", path, err)
	}
	return nil
}
