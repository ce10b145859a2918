package tool

import (
	"context"
	"path/filepath"

	"github.com/SkyH34D/subtrace/internal/executil"
)

// Dnsrecon runs the dnsrecon DNS information gatherer.
// It is a captured-output tool: dnsrecon prints to stdout, and the
// adapter writes the captured text to dnsrecon.txt itself.
type Dnsrecon struct {
	bin    string
	runner executil.Runner
}

// NewDnsrecon creates a dnsrecon adapter. An empty bin falls back to
// "dnsrecon".
func NewDnsrecon(bin string, runner executil.Runner) *Dnsrecon {
	if bin == "" {
		bin = "dnsrecon"
	}
	return &Dnsrecon{bin: bin, runner: runner}
}

// Run gathers DNS records for domain and writes the captured output to
// dnsrecon.txt under outputDir. A failed tool yields an empty artifact.
// The returned error covers only the adapter's own file write.
func (d *Dnsrecon) Run(ctx context.Context, domain, outputDir string) (string, error) {
	out := filepath.Join(outputDir, DnsreconFile)
	text := d.runner.Run(ctx, d.bin, "-d", domain)
	if err := writeArtifact(out, text); err != nil {
		return out, err
	}
	return out, nil
}
