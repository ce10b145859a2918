package pipeline

import (
	"context"
	"path/filepath"

	"github.com/SkyH34D/subtrace/internal/config"
	"github.com/SkyH34D/subtrace/internal/executil"
	"github.com/SkyH34D/subtrace/internal/merge"
	"github.com/SkyH34D/subtrace/internal/model"
	"github.com/SkyH34D/subtrace/internal/report"
	"github.com/SkyH34D/subtrace/internal/tool"
	"github.com/SkyH34D/subtrace/internal/whois"
)

// EnumerateStep runs the primary subdomain enumeration (amass).
type EnumerateStep struct {
	amass *tool.Amass
}

// NewEnumerateStep creates the amass enumeration step.
func NewEnumerateStep(amass *tool.Amass) *EnumerateStep {
	return &EnumerateStep{amass: amass}
}

// Name returns the step name.
func (s *EnumerateStep) Name() string {
	return "enumerate"
}

// Do executes amass and records the artifact path.
func (s *EnumerateStep) Do(ctx context.Context, result *model.RunResult) error {
	result.Amass = s.amass.Run(ctx, result.Domain.String(), result.OutputDir)
	return nil
}

// DNSInfoStep gathers DNS records (dnsrecon).
type DNSInfoStep struct {
	dnsrecon *tool.Dnsrecon
}

// NewDNSInfoStep creates the dnsrecon step.
func NewDNSInfoStep(dnsrecon *tool.Dnsrecon) *DNSInfoStep {
	return &DNSInfoStep{dnsrecon: dnsrecon}
}

// Name returns the step name.
func (s *DNSInfoStep) Name() string {
	return "dns_info"
}

// Do executes dnsrecon and records the artifact path.
func (s *DNSInfoStep) Do(ctx context.Context, result *model.RunResult) error {
	path, err := s.dnsrecon.Run(ctx, result.Domain.String(), result.OutputDir)
	result.Dnsrecon = path
	return err
}

// SecondaryEnumStep runs the secondary subdomain discovery (subfinder).
type SecondaryEnumStep struct {
	subfinder *tool.Subfinder
}

// NewSecondaryEnumStep creates the subfinder step.
func NewSecondaryEnumStep(subfinder *tool.Subfinder) *SecondaryEnumStep {
	return &SecondaryEnumStep{subfinder: subfinder}
}

// Name returns the step name.
func (s *SecondaryEnumStep) Name() string {
	return "secondary_enum"
}

// Do executes subfinder and records the artifact path.
func (s *SecondaryEnumStep) Do(ctx context.Context, result *model.RunResult) error {
	result.Subfinder = s.subfinder.Run(ctx, result.Domain.String(), result.OutputDir)
	return nil
}

// MergeSubdomainsStep unions the two enumerator outputs into
// subdominios.txt. The canonical artifact names are used directly so a
// run where an enumerator produced nothing still merges cleanly.
type MergeSubdomainsStep struct{}

// NewMergeSubdomainsStep creates the merge step.
func NewMergeSubdomainsStep() *MergeSubdomainsStep {
	return &MergeSubdomainsStep{}
}

// Name returns the step name.
func (s *MergeSubdomainsStep) Name() string {
	return "merge_subdomains"
}

// Do merges amass.txt and subfinder.txt into subdominios.txt.
func (s *MergeSubdomainsStep) Do(_ context.Context, result *model.RunResult) error {
	out := filepath.Join(result.OutputDir, tool.SubdominiosFile)
	err := merge.Files(out,
		filepath.Join(result.OutputDir, tool.AmassFile),
		filepath.Join(result.OutputDir, tool.SubfinderFile),
	)
	result.Subdominios = out
	return err
}

// ProbeLiveHostsStep checks which merged subdomains respond (httpx).
type ProbeLiveHostsStep struct {
	httpx *tool.Httpx
}

// NewProbeLiveHostsStep creates the httpx step.
func NewProbeLiveHostsStep(httpx *tool.Httpx) *ProbeLiveHostsStep {
	return &ProbeLiveHostsStep{httpx: httpx}
}

// Name returns the step name.
func (s *ProbeLiveHostsStep) Name() string {
	return "probe_live_hosts"
}

// Do executes httpx against the merged subdomain list.
func (s *ProbeLiveHostsStep) Do(ctx context.Context, result *model.RunResult) error {
	result.Vivos = s.httpx.Run(ctx, result.Subdominios, result.OutputDir)
	return nil
}

// CaptureScreenshotsStep captures screenshots of live hosts (gowitness).
type CaptureScreenshotsStep struct {
	gowitness *tool.Gowitness
}

// NewCaptureScreenshotsStep creates the gowitness step.
func NewCaptureScreenshotsStep(gowitness *tool.Gowitness) *CaptureScreenshotsStep {
	return &CaptureScreenshotsStep{gowitness: gowitness}
}

// Name returns the step name.
func (s *CaptureScreenshotsStep) Name() string {
	return "capture_screenshots"
}

// Do executes gowitness against the live-host list and records both
// the summary log and the screenshot directory.
func (s *CaptureScreenshotsStep) Do(ctx context.Context, result *model.RunResult) error {
	logPath, shotsDir, err := s.gowitness.Run(ctx, result.Vivos, result.OutputDir)
	result.Gowitness = logPath
	result.GowitnessShots = shotsDir
	return err
}

// ScanPortsStep scans the live hosts (nmap).
type ScanPortsStep struct {
	nmap *tool.Nmap
}

// NewScanPortsStep creates the nmap step.
func NewScanPortsStep(nmap *tool.Nmap) *ScanPortsStep {
	return &ScanPortsStep{nmap: nmap}
}

// Name returns the step name.
func (s *ScanPortsStep) Name() string {
	return "scan_ports"
}

// Do executes nmap against the live-host list.
func (s *ScanPortsStep) Do(ctx context.Context, result *model.RunResult) error {
	result.Nmap = s.nmap.Run(ctx, result.Vivos, result.OutputDir)
	return nil
}

// WhoisStep gathers WHOIS registration data. Optional.
type WhoisStep struct {
	gatherer *whois.Gatherer
}

// NewWhoisStep creates the WHOIS step.
func NewWhoisStep(gatherer *whois.Gatherer) *WhoisStep {
	return &WhoisStep{gatherer: gatherer}
}

// Name returns the step name.
func (s *WhoisStep) Name() string {
	return "whois"
}

// Do performs the WHOIS lookup and records the artifact path.
func (s *WhoisStep) Do(ctx context.Context, result *model.RunResult) error {
	path, err := s.gatherer.Run(ctx, result.Domain.String(), result.OutputDir)
	result.Whois = path
	return err
}

// GenerateReportStep renders the combined report artifacts.
type GenerateReportStep struct {
	generator *report.Generator
}

// NewGenerateReportStep creates the report step.
func NewGenerateReportStep(generator *report.Generator) *GenerateReportStep {
	return &GenerateReportStep{generator: generator}
}

// Name returns the step name.
func (s *GenerateReportStep) Name() string {
	return "generate_report"
}

// Do renders the HTML, PDF, and optional Markdown artifacts.
func (s *GenerateReportStep) Do(ctx context.Context, result *model.RunResult) error {
	return s.generator.Generate(ctx, result)
}

// ReconSteps returns the full ordered step list for one domain:
// enumerate, dns_info, secondary_enum, merge_subdomains,
// probe_live_hosts, capture_screenshots, scan_ports, optionally whois,
// then generate_report.
func ReconSteps(tools config.Tools, runner executil.Runner, generator *report.Generator, whoisGatherer *whois.Gatherer) []Step {
	steps := []Step{
		NewEnumerateStep(tool.NewAmass(tools.Amass, runner)),
		NewDNSInfoStep(tool.NewDnsrecon(tools.Dnsrecon, runner)),
		NewSecondaryEnumStep(tool.NewSubfinder(tools.Subfinder, runner)),
		NewMergeSubdomainsStep(),
		NewProbeLiveHostsStep(tool.NewHttpx(tools.Httpx, runner)),
		NewCaptureScreenshotsStep(tool.NewGowitness(tools.Gowitness, runner)),
		NewScanPortsStep(tool.NewNmap(tools.Nmap, runner)),
	}
	if whoisGatherer != nil {
		steps = append(steps, NewWhoisStep(whoisGatherer))
	}
	steps = append(steps, NewGenerateReportStep(generator))
	return steps
}
