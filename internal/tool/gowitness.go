package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SkyH34D/subtrace/internal/executil"
)

// Gowitness runs the gowitness screenshot capturer against a host list
// file. Screenshots land in gowitness/shots/ under the output
// directory; the adapter composes a companion text log (gowitness.txt)
// from the destination directory and the captured tool output, so the
// report has a readable section for this tool.
type Gowitness struct {
	bin    string
	runner executil.Runner
}

// NewGowitness creates a gowitness adapter. An empty bin falls back to
// "gowitness".
func NewGowitness(bin string, runner executil.Runner) *Gowitness {
	if bin == "" {
		bin = "gowitness"
	}
	return &Gowitness{bin: bin, runner: runner}
}

// Run captures screenshots of the hosts listed in listFile.
// It returns the path of the summary log and the screenshot directory.
// The error covers the adapter's own filesystem work (creating the
// screenshot directory, writing the log), never the tool itself.
func (g *Gowitness) Run(ctx context.Context, listFile, outputDir string) (logPath, shotsDir string, err error) {
	shotsDir = filepath.Join(outputDir, GowitnessShotsDir)
	logPath = filepath.Join(outputDir, GowitnessFile)

	if err := os.MkdirAll(shotsDir, 0o750); err != nil {
		return logPath, shotsDir, fmt.Errorf("failed to create screenshot directory %s: %w", shotsDir, err)
	}

	text := g.runner.Run(ctx, g.bin, "file", "-f", listFile, "--destination", shotsDir)

	summary := fmt.Sprintf("Screenshots stored in %s\n\n%s", shotsDir, text)
	if err := writeArtifact(logPath, summary); err != nil {
		return logPath, shotsDir, err
	}
	return logPath, shotsDir, nil
}
