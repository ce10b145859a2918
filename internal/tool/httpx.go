package tool

import (
	"context"
	"path/filepath"

	"github.com/SkyH34D/subtrace/internal/executil"
)

// Httpx runs the httpx live-host prober against a host list file.
// It is a self-writing tool: httpx receives the output path via -o and
// writes vivos.txt itself.
type Httpx struct {
	bin    string
	runner executil.Runner
}

// NewHttpx creates an httpx adapter. An empty bin falls back to "httpx".
func NewHttpx(bin string, runner executil.Runner) *Httpx {
	if bin == "" {
		bin = "httpx"
	}
	return &Httpx{bin: bin, runner: runner}
}

// Run probes the hosts listed in listFile, instructing httpx to write
// the responsive ones to vivos.txt under outputDir.
func (h *Httpx) Run(ctx context.Context, listFile, outputDir string) string {
	out := filepath.Join(outputDir, VivosFile)
	h.runner.Run(ctx, h.bin, "-l", listFile, "-o", out)
	return out
}
