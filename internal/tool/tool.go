package tool

import (
	"fmt"
	"os"
	"path/filepath"
)

// Artifact names inside the per-run output directory.
// These are deterministic so a re-run overwrites a prior run's files.
const (
	AmassFile       = "amass.txt"
	DnsreconFile    = "dnsrecon.txt"
	SubfinderFile   = "subfinder.txt"
	SubdominiosFile = "subdominios.txt"
	VivosFile       = "vivos.txt"
	GowitnessFile   = "gowitness.txt"
	NmapFile        = "nmap.txt"
	WhoisFile       = "whois.txt"
)

// GowitnessShotsDir is the screenshot directory relative to the output
// directory.
var GowitnessShotsDir = filepath.Join("gowitness", "shots")

// writeArtifact writes captured tool output to path.
// Used by the captured-output adapters.
func writeArtifact(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return nil
}
