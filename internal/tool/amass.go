package tool

import (
	"context"
	"path/filepath"

	"github.com/SkyH34D/subtrace/internal/executil"
)

// Amass runs the amass subdomain enumerator.
// It is a self-writing tool: amass receives the output path via -o and
// writes amass.txt itself.
type Amass struct {
	bin    string
	runner executil.Runner
}

// NewAmass creates an amass adapter. An empty bin falls back to "amass".
func NewAmass(bin string, runner executil.Runner) *Amass {
	if bin == "" {
		bin = "amass"
	}
	return &Amass{bin: bin, runner: runner}
}

// Run enumerates subdomains of domain, instructing amass to write its
// findings to amass.txt under outputDir. The returned path is not
// checked for existence: a failed enumeration simply leaves it absent.
func (a *Amass) Run(ctx context.Context, domain, outputDir string) string {
	out := filepath.Join(outputDir, AmassFile)
	a.runner.Run(ctx, a.bin, "enum", "-d", domain, "-o", out)
	return out
}
