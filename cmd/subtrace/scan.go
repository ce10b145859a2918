package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SkyH34D/subtrace/internal/config"
	"github.com/SkyH34D/subtrace/internal/executil"
	"github.com/SkyH34D/subtrace/internal/history"
	logpkg "github.com/SkyH34D/subtrace/internal/log"
	"github.com/SkyH34D/subtrace/internal/model"
	"github.com/SkyH34D/subtrace/internal/pipeline"
	"github.com/SkyH34D/subtrace/internal/report"
	"github.com/SkyH34D/subtrace/internal/whois"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [domain]...",
		Short: "Run the reconnaissance pipeline against one or more domains",
		Long: `Scan runs the full reconnaissance workflow for each target domain.

For every domain the pipeline executes, in order:
- amass and subfinder enumerate subdomains
- dnsrecon collects DNS records
- the enumeration results are merged and deduplicated
- httpx probes which hosts respond over HTTP
- gowitness captures screenshots of the live hosts
- nmap scans the live hosts for open ports
- an HTML report is rendered and converted to PDF

All artifacts land in a per-domain directory named <domain>-recon.
A failing tool leaves its section empty; the run always completes.

Examples:
  # Scan a single domain
  subtrace scan example.com

  # Scan several domains, two at a time
  subtrace scan --parallel 2 example.com example.org

  # Bound each external tool to five minutes
  subtrace scan --timeout 5m example.com

  # Include a WHOIS section and a Markdown rendition of the report
  subtrace scan --whois --markdown example.com

Configuration file (.subtrace) example:
  tools:
    amass: /opt/amass/amass
    nmap: nmap
  timeout: 10m`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Run behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultToolTimeout,
		"Timeout for each external tool invocation (0 means unbounded)")
	cmd.Flags().IntP("parallel", "p", config.DefaultParallel,
		"Number of domains scanned concurrently")

	// Optional stages
	cmd.Flags().BoolP("whois", "w", false,
		"Add a WHOIS section to the report")
	cmd.Flags().BoolP("markdown", "m", false,
		"Additionally write a Markdown rendition of the report")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .subtrace in current or home directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// No domain given: show usage and exit cleanly, touching nothing.
	if len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := logpkg.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ToolTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Parallel, err = cmd.Flags().GetInt("parallel")
	if err != nil {
		return nil, err
	}

	cfg.Whois, err = cmd.Flags().GetBool("whois")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Load tool overrides from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, fall back to defaults when no file exists.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Get positional arguments (target domains)
	cfg.Targets = args

	return cfg, nil
}

// runScan executes the reconnaissance runs for all configured targets.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting reconnaissance",
		"targets", cfg.Targets,
		"parallel", cfg.Parallel,
		"timeout", cfg.ToolTimeout,
		"whois", cfg.Whois,
	)

	runner := executil.NewExecRunner(
		executil.WithTimeout(cfg.ToolTimeout),
		executil.WithLogger(logger),
	)

	generatorOpts := []report.GeneratorOption{
		report.WithConverter(report.NewWkhtmltopdfConverter(cfg.Tools.Wkhtmltopdf, runner)),
		report.WithMarkdown(cfg.MarkdownReport),
		report.WithGeneratorLogger(logger),
	}
	generator := report.NewGenerator(generatorOpts...)

	var whoisGatherer *whois.Gatherer
	if cfg.Whois {
		whoisGatherer = whois.NewGatherer(whois.WithLogger(logger))
	}

	// History recording is best effort: a broken database never blocks
	// the reconnaissance itself.
	var db *history.DB
	if cfg.HistoryDir != "" {
		var err error
		db, err = history.Open(cfg.HistoryDir, history.DefaultOptions())
		if err != nil {
			logger.Warn("run history disabled", "dir", cfg.HistoryDir, "error", err)
		} else {
			defer db.Close()
			logger.Info("run history opened", "dir", cfg.HistoryDir)
		}
	}

	runOne := func(ctx context.Context, target string) (*model.RunResult, error) {
		domain, err := model.NewDomain(target)
		if err != nil {
			return nil, fmt.Errorf("invalid domain %q: %w", target, err)
		}

		result := model.NewRunResult(domain)
		if err := os.MkdirAll(result.OutputDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", result.OutputDir, err)
		}

		p := pipeline.New(
			pipeline.WithLogger(logger),
			pipeline.WithContinueOnError(true),
		)
		p.AddSteps(pipeline.ReconSteps(cfg.Tools, runner, generator, whoisGatherer)...)

		result.StartedAt = time.Now()
		if err := p.Execute(ctx, result); err != nil {
			return nil, err
		}
		result.FinishedAt = time.Now()

		if db != nil {
			if _, err := db.Record(ctx, result); err != nil {
				logger.Warn("failed to record run", "target", domain.String(), "error", err)
			}
		}

		return result, nil
	}

	bp := pipeline.NewBatchProcessor(runOne,
		pipeline.WithConcurrency(cfg.Parallel),
		pipeline.WithBatchLogger(logger),
	)

	startTime := time.Now()
	results, err := bp.ProcessBatch(ctx, cfg.Targets)
	if err != nil {
		return err
	}

	failed := 0
	for i, result := range results {
		if result == nil {
			failed++
			continue
		}
		fmt.Printf("[%d/%d] %s: %d artifacts in %s\n",
			i+1, len(results), result.Domain.String(),
			result.ArtifactCount(), result.Duration().Round(time.Millisecond))
		fmt.Printf("  report: %s\n", result.HTMLReport)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nReconnaissance completed in %s\n", elapsed.Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(results))
	}
	return nil
}
