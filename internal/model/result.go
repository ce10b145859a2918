package model

import "time"

// Tool section names as they appear in the report, in invocation order.
// These double as the fixed keys of the RunResult record.
const (
	SectionAmass       = "amass"
	SectionDnsrecon    = "dnsrecon"
	SectionSubfinder   = "subfinder"
	SectionSubdominios = "subdominios"
	SectionVivos       = "vivos"
	SectionGowitness   = "gowitness"
	SectionNmap        = "nmap"
	SectionWhois       = "whois"
)

// Section is one named artifact of a run: the tool name and the path
// of the text file holding its output.
type Section struct {
	Name string
	Path string
}

// RunResult records the artifacts produced by one pipeline run.
//
// Design decision: the set of tools is fixed, so this is a flat struct
// with one field per artifact rather than an open-ended map. Sections
// returns the populated fields in invocation order, which is also the
// report section order. A field is populated once the corresponding
// step has run; its file may still be empty or absent if the external
// tool failed, which downstream consumers treat as empty content.
type RunResult struct {
	// Domain is the scan target.
	Domain Domain

	// OutputDir is the directory holding all artifacts of this run.
	OutputDir string

	// Artifact paths, one per tool, set by the pipeline steps.
	Amass       string
	Dnsrecon    string
	Subfinder   string
	Subdominios string
	Vivos       string
	Gowitness   string
	Nmap        string

	// Whois is only set when the optional WHOIS step is enabled.
	Whois string

	// GowitnessShots is the directory of captured screenshots.
	// It is not a report section; Gowitness points at the companion
	// text log that summarizes it.
	GowitnessShots string

	// Report artifact paths, set by the report step.
	HTMLReport     string
	PDFReport      string
	MarkdownReport string

	// Timing, recorded by the orchestrator for the run history.
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRunResult creates a RunResult for the given domain with the
// output directory derived from it.
func NewRunResult(domain Domain) *RunResult {
	return &RunResult{
		Domain:    domain,
		OutputDir: domain.OutputDir(),
	}
}

// Sections returns the populated artifacts in invocation order:
// amass, dnsrecon, subfinder, subdominios, vivos, gowitness, nmap,
// and whois when present. Unset fields are skipped so a partial run
// still yields a well-ordered report.
func (r *RunResult) Sections() []Section {
	ordered := []Section{
		{Name: SectionAmass, Path: r.Amass},
		{Name: SectionDnsrecon, Path: r.Dnsrecon},
		{Name: SectionSubfinder, Path: r.Subfinder},
		{Name: SectionSubdominios, Path: r.Subdominios},
		{Name: SectionVivos, Path: r.Vivos},
		{Name: SectionGowitness, Path: r.Gowitness},
		{Name: SectionNmap, Path: r.Nmap},
		{Name: SectionWhois, Path: r.Whois},
	}

	sections := make([]Section, 0, len(ordered))
	for _, s := range ordered {
		if s.Path != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

// ArtifactCount returns the number of populated tool sections.
func (r *RunResult) ArtifactCount() int {
	return len(r.Sections())
}

// Duration returns the elapsed time of the run, or zero if the run
// has not finished.
func (r *RunResult) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
