package tool

import (
	"context"
	"path/filepath"

	"github.com/SkyH34D/subtrace/internal/executil"
)

// Subfinder runs the subfinder secondary subdomain discovery tool.
// It is a self-writing tool: subfinder receives the output path via -o
// and writes subfinder.txt itself.
type Subfinder struct {
	bin    string
	runner executil.Runner
}

// NewSubfinder creates a subfinder adapter. An empty bin falls back to
// "subfinder".
func NewSubfinder(bin string, runner executil.Runner) *Subfinder {
	if bin == "" {
		bin = "subfinder"
	}
	return &Subfinder{bin: bin, runner: runner}
}

// Run discovers subdomains of domain, instructing subfinder to write
// its findings to subfinder.txt under outputDir.
func (s *Subfinder) Run(ctx context.Context, domain, outputDir string) string {
	out := filepath.Join(outputDir, SubfinderFile)
	s.runner.Run(ctx, s.bin, "-d", domain, "-o", out)
	return out
}
