// Package main provides the entry point for the SubTrace CLI.
//
// SubTrace is a reconnaissance pipeline for target domains. It chains
// subdomain enumeration, DNS inspection, live-host probing, screenshot
// capture, and port scanning, then renders the collected evidence into
// HTML and PDF reports.
//
// Usage:
//
//	subtrace scan <domain>
//	subtrace history
//
// See --help for all available options.
package main

// main is the entry point for SubTrace.
func main() {
	Execute()
}
