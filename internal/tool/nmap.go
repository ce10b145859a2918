package tool

import (
	"context"
	"path/filepath"

	"github.com/SkyH34D/subtrace/internal/executil"
)

// Nmap runs a light nmap port scan against a host list file.
// It is a self-writing tool: nmap receives the output path via -oN and
// writes nmap.txt itself.
type Nmap struct {
	bin    string
	runner executil.Runner
}

// NewNmap creates an nmap adapter. An empty bin falls back to "nmap".
func NewNmap(bin string, runner executil.Runner) *Nmap {
	if bin == "" {
		bin = "nmap"
	}
	return &Nmap{bin: bin, runner: runner}
}

// Run scans the hosts listed in listFile, instructing nmap to write
// its normal-format output to nmap.txt under outputDir.
func (n *Nmap) Run(ctx context.Context, listFile, outputDir string) string {
	out := filepath.Join(outputDir, NmapFile)
	n.runner.Run(ctx, n.bin, "-iL", listFile, "-oN", out)
	return out
}
