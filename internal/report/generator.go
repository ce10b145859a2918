package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SkyH34D/subtrace/internal/model"
)

// Generator produces the report artifacts for one run.
type Generator struct {
	// renderer builds the HTML document. When it fails, the plain
	// string-assembly renderer takes over so a report is always
	// produced.
	renderer HTMLRenderer

	// converter turns the HTML artifact into the PDF artifact.
	converter PDFConverter

	// markdown additionally writes a Markdown rendition when true.
	markdown bool

	// logger for structured logging.
	logger *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRenderer sets the primary HTML renderer.
func WithRenderer(r HTMLRenderer) GeneratorOption {
	return func(g *Generator) {
		g.renderer = r
	}
}

// WithConverter sets the PDF converter capability.
func WithConverter(c PDFConverter) GeneratorOption {
	return func(g *Generator) {
		g.converter = c
	}
}

// WithMarkdown enables the additional Markdown report artifact.
func WithMarkdown(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.markdown = enabled
	}
}

// WithGeneratorLogger sets a custom logger for the generator.
func WithGeneratorLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator. By default it renders through
// html/template and has no PDF converter, so the PDF artifact is the
// placeholder until a converter is injected.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		renderer:  NewTemplateRenderer(),
		converter: NewUnavailableConverter(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Generate writes the HTML report, the best-effort PDF, and optionally
// the Markdown rendition, recording their paths on result. Both the
// HTML and PDF artifacts exist at their deterministic paths when the
// call returns without error; a failed PDF conversion leaves the
// placeholder file rather than an error.
func (g *Generator) Generate(ctx context.Context, result *model.RunResult) error {
	domain := result.Domain.String()
	base := filepath.Join(result.OutputDir, result.Domain.ReportBase())
	htmlPath := base + ".html"
	pdfPath := base + ".pdf"

	sections := g.loadSections(result)

	doc, err := g.renderer.Render(domain, sections)
	if err != nil {
		// Degraded capability: assemble the document by hand.
		g.logger.Warn("html templating unavailable, using plain assembly",
			"domain", domain,
			"error", err,
		)
		doc, _ = NewPlainRenderer().Render(domain, sections)
	}

	if err := os.WriteFile(htmlPath, []byte(doc), 0o600); err != nil {
		return fmt.Errorf("failed to write HTML report %s: %w", htmlPath, err)
	}
	result.HTMLReport = htmlPath

	if err := g.converter.Convert(ctx, htmlPath, pdfPath); err != nil {
		g.logger.Warn("pdf conversion failed, writing placeholder",
			"domain", domain,
			"error", err,
		)
		if err := os.WriteFile(pdfPath, []byte(PDFPlaceholder), 0o600); err != nil {
			return fmt.Errorf("failed to write PDF placeholder %s: %w", pdfPath, err)
		}
	}
	result.PDFReport = pdfPath

	if g.markdown {
		mdPath := base + ".md"
		if err := writeMarkdown(mdPath, domain, sections); err != nil {
			return err
		}
		result.MarkdownReport = mdPath
	}

	return nil
}

// loadSections reads each artifact's text. A missing or unreadable
// file contributes empty content, keeping a partial run reportable.
func (g *Generator) loadSections(result *model.RunResult) []SectionContent {
	var sections []SectionContent
	for _, s := range result.Sections() {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			g.logger.Debug("artifact unreadable, embedding empty section",
				"section", s.Name,
				"path", s.Path,
			)
			data = nil
		}
		sections = append(sections, SectionContent{Name: s.Name, Content: string(data)})
	}
	return sections
}
