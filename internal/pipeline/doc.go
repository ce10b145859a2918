// Package pipeline sequences the reconnaissance stages for one domain.
//
// The stages run strictly in order: enumerate, dns_info, secondary_enum,
// merge_subdomains, probe_live_hosts, capture_screenshots, scan_ports,
// and generate_report, with each stage's artifact feeding later stages.
// Each stage is implemented as a Step that receives the accumulating
// RunResult.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running scans
//
// A failed external tool never fails its step; steps report errors only
// for the pipeline's own filesystem work, and the orchestrator runs with
// continue-on-error so even those never abort a run. Multiple domains
// can be processed concurrently through the BatchProcessor while each
// domain's pipeline stays sequential.
package pipeline
