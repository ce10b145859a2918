// Package main provides the entry point for the SubTrace CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for SubTrace.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtrace",
		Short: "Reconnaissance pipeline for target domains",
		Long: `SubTrace orchestrates a reconnaissance workflow against target domains.
It runs subdomain enumeration (amass, subfinder), DNS inspection (dnsrecon),
live-host probing (httpx), screenshot capture (gowitness), and port scanning
(nmap), then renders the collected evidence into HTML and PDF reports.

A missing or failing external tool never aborts the run: its section of the
report is simply empty or carries the tool's error text.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
