package report

import (
	"context"
	"errors"
	"fmt"
	"os"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/SkyH34D/subtrace/internal/executil"
)

// PDFPlaceholder is written to the PDF path when conversion fails, so
// downstream consumers can always assume the artifact exists even when
// it is not a valid PDF.
const PDFPlaceholder = "PDF generation failed"

// ErrConverterUnavailable is returned by UnavailableConverter.
var ErrConverterUnavailable = errors.New("pdf converter unavailable")

// PDFConverter converts an HTML file to a PDF file.
// Implementations report failure via the returned error; the Generator
// translates any failure into the placeholder artifact.
type PDFConverter interface {
	// Convert renders htmlPath into pdfPath.
	Convert(ctx context.Context, htmlPath, pdfPath string) error
}

// WkhtmltopdfConverter shells out to wkhtmltopdf.
//
// The runner absorbs process failures, so a missing or broken converter
// is detected after the fact: the produced file must exist, be
// non-empty, and pass pdfcpu validation before the conversion counts
// as successful.
type WkhtmltopdfConverter struct {
	bin    string
	runner executil.Runner
}

// NewWkhtmltopdfConverter creates a converter using the given binary.
// An empty bin falls back to "wkhtmltopdf".
func NewWkhtmltopdfConverter(bin string, runner executil.Runner) *WkhtmltopdfConverter {
	if bin == "" {
		bin = "wkhtmltopdf"
	}
	return &WkhtmltopdfConverter{bin: bin, runner: runner}
}

// Convert implements PDFConverter.
func (c *WkhtmltopdfConverter) Convert(ctx context.Context, htmlPath, pdfPath string) error {
	// A PDF left by a previous run would pass the checks below even if
	// the converter writes nothing this time.
	if err := os.Remove(pdfPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear previous output: %w", err)
	}

	c.runner.Run(ctx, c.bin, htmlPath, pdfPath)

	info, err := os.Stat(pdfPath)
	if err != nil {
		return fmt.Errorf("converter produced no output: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("converter produced an empty file")
	}
	if err := pdfapi.ValidateFile(pdfPath, nil); err != nil {
		return fmt.Errorf("converter output failed validation: %w", err)
	}
	return nil
}

// UnavailableConverter is the capability object for environments
// without a PDF converter. Convert always fails, which makes the
// Generator fall through to the placeholder artifact.
type UnavailableConverter struct{}

// NewUnavailableConverter creates the always-failing converter.
func NewUnavailableConverter() *UnavailableConverter {
	return &UnavailableConverter{}
}

// Convert implements PDFConverter.
func (c *UnavailableConverter) Convert(_ context.Context, _, _ string) error {
	return ErrConverterUnavailable
}
