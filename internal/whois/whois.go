package whois

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// WhoisFile is the artifact name inside the output directory.
const WhoisFile = "whois.txt"

// LookupFunc performs the raw WHOIS query. It matches the signature of
// whois.Whois and exists so tests can inject canned responses.
type LookupFunc func(domain string, servers ...string) (string, error)

// Gatherer produces the whois.txt artifact for a run.
type Gatherer struct {
	lookup LookupFunc
	logger *slog.Logger
}

// GathererOption configures a Gatherer.
type GathererOption func(*Gatherer)

// WithLookup replaces the WHOIS query function.
func WithLookup(fn LookupFunc) GathererOption {
	return func(g *Gatherer) {
		g.lookup = fn
	}
}

// WithLogger sets a custom logger for the gatherer.
func WithLogger(logger *slog.Logger) GathererOption {
	return func(g *Gatherer) {
		g.logger = logger
	}
}

// NewGatherer creates a Gatherer that queries live WHOIS servers
// unless a lookup function is injected.
func NewGatherer(opts ...GathererOption) *Gatherer {
	g := &Gatherer{lookup: whois.Whois}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Run queries WHOIS for domain and writes a readable summary to
// whois.txt under outputDir. Lookup and parse failures are absorbed:
// the artifact degrades to the raw response or to an empty file. The
// returned error covers only the artifact write.
func (g *Gatherer) Run(ctx context.Context, domain, outputDir string) (string, error) {
	out := filepath.Join(outputDir, WhoisFile)

	var content string
	if err := ctx.Err(); err != nil {
		g.logger.Debug("whois lookup skipped", "domain", domain, "reason", err)
	} else if raw, err := g.lookup(domain); err != nil {
		g.logger.Debug("whois lookup failed", "domain", domain, "error", err)
	} else {
		content = summarize(domain, raw, g.logger)
	}

	if err := os.WriteFile(out, []byte(content), 0o600); err != nil {
		return out, fmt.Errorf("failed to write artifact %s: %w", out, err)
	}
	return out, nil
}

// summarize renders the parsed WHOIS record as plain text, falling
// back to the raw response when parsing fails.
func summarize(domain, raw string, logger *slog.Logger) string {
	info, err := whoisparser.Parse(raw)
	if err != nil {
		logger.Debug("whois parse failed, keeping raw response",
			"domain", domain,
			"error", err,
		)
		return raw
	}

	var sb strings.Builder
	writeLine := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%-16s %s\n", label+":", value)
		}
	}

	if d := info.Domain; d != nil {
		writeLine("Domain", d.Domain)
		writeLine("Created", d.CreatedDate)
		writeLine("Updated", d.UpdatedDate)
		writeLine("Expires", d.ExpirationDate)
		if len(d.Status) > 0 {
			writeLine("Status", strings.Join(d.Status, ", "))
		}
		if len(d.NameServers) > 0 {
			writeLine("Name servers", strings.Join(d.NameServers, ", "))
		}
	}
	if r := info.Registrar; r != nil {
		writeLine("Registrar", r.Name)
	}
	if r := info.Registrant; r != nil {
		writeLine("Registrant", r.Organization)
		writeLine("Country", r.Country)
	}

	if sb.Len() == 0 {
		return raw
	}
	return sb.String()
}
