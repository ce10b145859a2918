package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/SkyH34D/subtrace/internal/config"
	"github.com/SkyH34D/subtrace/internal/model"
	"github.com/SkyH34D/subtrace/internal/report"
	"github.com/SkyH34D/subtrace/internal/whois"
)

// discardLogger returns a logger that drops all records.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// simRunner simulates the external tools: self-writing tools write
// canned content to their output-path flag, captured-output tools
// return canned text.
type simRunner struct {
	mu    sync.Mutex
	tools []string
}

// Run implements executil.Runner.
func (s *simRunner) Run(_ context.Context, name string, args ...string) string {
	s.mu.Lock()
	s.tools = append(s.tools, name)
	s.mu.Unlock()

	flagValue := func(flag string) string {
		for i, a := range args {
			if a == flag && i+1 < len(args) {
				return args[i+1]
			}
		}
		return ""
	}
	write := func(flag, content string) {
		if path := flagValue(flag); path != "" {
			_ = os.WriteFile(path, []byte(content), 0o600)
		}
	}

	switch name {
	case "amass":
		write("-o", "one.example.com\ntwo.example.com\n")
	case "subfinder":
		write("-o", "two.example.com\nthree.example.com\n")
	case "dnsrecon":
		return "A example.com 93.184.216.34\n"
	case "httpx":
		write("-o", "https://one.example.com\n")
	case "gowitness":
		return "3 screenshots captured\n"
	case "nmap":
		write("-oN", "80/tcp open http\n")
	}
	return ""
}

// runRecon executes the full step list for example.com into dir.
func runRecon(t *testing.T, dir string, opts ...report.GeneratorOption) *model.RunResult {
	t.Helper()

	result := model.NewRunResult(model.MustNewDomain("example.com"))
	result.OutputDir = dir
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create output dir: %v", err)
	}

	opts = append([]report.GeneratorOption{report.WithGeneratorLogger(discardLogger())}, opts...)
	gen := report.NewGenerator(opts...)

	p := New(WithLogger(discardLogger()), WithContinueOnError(true))
	p.AddSteps(ReconSteps(config.Tools{}.WithDefaults(), &simRunner{}, gen, nil)...)

	if err := p.Execute(context.Background(), result); err != nil {
		t.Fatalf("unexpected pipeline error: %v", err)
	}
	return result
}

// TestReconStepsOrder tests the fixed stage sequence.
func TestReconStepsOrder(t *testing.T) {
	t.Parallel()

	t.Run("without whois", func(t *testing.T) {
		t.Parallel()

		steps := ReconSteps(config.Tools{}.WithDefaults(), &simRunner{}, report.NewGenerator(), nil)

		var names []string
		for _, s := range steps {
			names = append(names, s.Name())
		}
		want := []string{
			"enumerate", "dns_info", "secondary_enum", "merge_subdomains",
			"probe_live_hosts", "capture_screenshots", "scan_ports", "generate_report",
		}
		if len(names) != len(want) {
			t.Fatalf("expected %d steps, got %v", len(want), names)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("step %d: expected %q, got %q", i, want[i], names[i])
			}
		}
	})

	t.Run("whois slots in before the report", func(t *testing.T) {
		t.Parallel()

		steps := ReconSteps(config.Tools{}.WithDefaults(), &simRunner{}, report.NewGenerator(), whois.NewGatherer())

		var names []string
		for _, s := range steps {
			names = append(names, s.Name())
		}
		if names[len(names)-1] != "generate_report" || names[len(names)-2] != "whois" {
			t.Errorf("expected ...whois, generate_report, got %v", names)
		}
	})
}

// TestReconPipelineEndToEnd tests the full run against stubbed tools:
// all nine artifacts exist with the expected contents and the report
// sections appear in invocation order.
func TestReconPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "example.com-recon")
	result := runRecon(t, dir)

	t.Run("produces all nine artifacts", func(t *testing.T) {
		for _, name := range []string{
			"amass.txt", "dnsrecon.txt", "subfinder.txt", "subdominios.txt",
			"vivos.txt", "gowitness.txt", "nmap.txt",
			"example.com_reporte.html", "example.com_reporte.pdf",
		} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected artifact %s: %v", name, err)
			}
		}
		if info, err := os.Stat(filepath.Join(dir, "gowitness", "shots")); err != nil || !info.IsDir() {
			t.Errorf("expected screenshot directory: %v", err)
		}
	})

	t.Run("merged subdomains are deduplicated in first-seen order", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "subdominios.txt"))
		if err != nil {
			t.Fatalf("expected merged artifact: %v", err)
		}
		want := "one.example.com\ntwo.example.com\nthree.example.com\n"
		if string(data) != want {
			t.Errorf("expected %q, got %q", want, string(data))
		}
	})

	t.Run("dnsrecon output is captured into its artifact", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "dnsrecon.txt"))
		if err != nil {
			t.Fatalf("expected dnsrecon artifact: %v", err)
		}
		if !strings.Contains(string(data), "93.184.216.34") {
			t.Errorf("expected captured DNS output, got %q", string(data))
		}
	})

	t.Run("report sections follow invocation order", func(t *testing.T) {
		data, err := os.ReadFile(result.HTMLReport)
		if err != nil {
			t.Fatalf("expected HTML report: %v", err)
		}
		html := string(data)

		order := []string{"amass", "dnsrecon", "subfinder", "subdominios", "vivos", "gowitness", "nmap"}
		last := -1
		for _, name := range order {
			idx := strings.Index(html, "<h2>"+name+"</h2>")
			if idx == -1 {
				t.Fatalf("expected section %q in report", name)
			}
			if idx < last {
				t.Errorf("section %q out of order", name)
			}
			last = idx
		}
	})

	t.Run("pdf degrades to placeholder without a converter", func(t *testing.T) {
		data, err := os.ReadFile(result.PDFReport)
		if err != nil {
			t.Fatalf("expected PDF artifact: %v", err)
		}
		if string(data) != report.PDFPlaceholder {
			t.Errorf("expected placeholder, got %q", string(data))
		}
	})
}

// TestReconPipelineRerun tests that a second run overwrites artifacts
// without accumulating stale content.
func TestReconPipelineRerun(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "example.com-recon")
	runRecon(t, dir)

	first, err := os.ReadFile(filepath.Join(dir, "subdominios.txt"))
	if err != nil {
		t.Fatalf("expected merged artifact: %v", err)
	}

	runRecon(t, dir)

	second, err := os.ReadFile(filepath.Join(dir, "subdominios.txt"))
	if err != nil {
		t.Fatalf("expected merged artifact after rerun: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("expected identical artifact after rerun, got %q then %q", first, second)
	}
}

// TestMergeStepUsesCanonicalNames tests that the merge step reads the
// deterministic artifact names even when the enumerators wrote nothing.
func TestMergeStepUsesCanonicalNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result := model.NewRunResult(model.MustNewDomain("example.com"))
	result.OutputDir = dir

	if err := NewMergeSubdomainsStep().Do(context.Background(), result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(result.Subdominios)
	if err != nil {
		t.Fatalf("expected merged artifact: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty merge output, got %q", string(data))
	}
}
